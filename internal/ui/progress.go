package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar reports determinate progress, one step per emitted file.
type ProgressBar interface {
	// Advance moves the bar forward and shows label next to it.
	Advance(label string)
	// Done completes the bar and releases the terminal.
	Done()
}

// Spinner reports indeterminate progress.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// Progress builds progress widgets appropriate for the terminal.
type Progress struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress writing to os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager) *Progress {
	return &Progress{theme: theme, headless: hm, writer: os.Stdout}
}

// NewProgressWithWriter creates a Progress with a custom writer (for tests).
func NewProgressWithWriter(theme *Theme, hm *HeadlessManager, w io.Writer) *Progress {
	return &Progress{theme: theme, headless: hm, writer: w}
}

// StartBar creates a bar that expects total Advance calls.
func (p *Progress) StartBar(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return &logProgressBar{title: title, total: total, writer: p.writer}
	}
	return startTeaBar(p.theme, title, total)
}

// StartSpinner creates a spinner with the given title.
func (p *Progress) StartSpinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newLogSpinner(title, p.writer)
	}
	return startTeaSpinner(p.theme, title)
}

// --- animated bar ---

type barAdvanceMsg string
type barDoneMsg struct{}

type barModel struct {
	bar     progress.Model
	title   string
	label   string
	current int
	total   int
	done    bool
}

func newBarModel(theme *Theme, title string, total int) barModel {
	bar := progress.New(
		progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
		progress.WithWidth(40),
	)
	return barModel{bar: bar, title: title, total: total}
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case barAdvanceMsg:
		if m.current < m.total {
			m.current++
		}
		m.label = string(msg)
		return m, nil
	case barDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s %s [%d/%d] %s\n", m.title, m.bar.ViewAs(pct), m.current, m.total, m.label)
}

type teaBar struct {
	program *tea.Program
	once    sync.Once
}

func startTeaBar(theme *Theme, title string, total int) *teaBar {
	p := tea.NewProgram(newBarModel(theme, title, total))
	b := &teaBar{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return b
}

func (b *teaBar) Advance(label string) {
	b.program.Send(barAdvanceMsg(label))
}

func (b *teaBar) Done() {
	b.once.Do(func() {
		b.program.Send(barDoneMsg{})
		b.program.Wait()
	})
}

// --- animated spinner ---

type spinTitleMsg string
type spinStopMsg struct{}

type spinModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinModel(theme *Theme, title string) spinModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	return spinModel{spinner: s, title: title}
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

type teaSpinner struct {
	program *tea.Program
	once    sync.Once
}

func startTeaSpinner(theme *Theme, title string) *teaSpinner {
	p := tea.NewProgram(newSpinModel(theme, title))
	s := &teaSpinner{program: p}
	go func() {
		_, _ = p.Run()
	}()
	return s
}

func (s *teaSpinner) SetTitle(title string) {
	s.program.Send(spinTitleMsg(title))
}

func (s *teaSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinStopMsg{})
		s.program.Wait()
	})
}

// --- headless fallbacks ---

type logProgressBar struct {
	title   string
	total   int
	current int
	writer  io.Writer
}

func (b *logProgressBar) Advance(label string) {
	if b.current < b.total {
		b.current++
	}
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, label)
}

func (b *logProgressBar) Done() {
	b.current = b.total
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

type logSpinner struct {
	writer io.Writer
}

func newLogSpinner(title string, w io.Writer) *logSpinner {
	_, _ = fmt.Fprintln(w, title)
	return &logSpinner{writer: w}
}

func (s *logSpinner) SetTitle(title string) {
	_, _ = fmt.Fprintln(s.writer, title)
}

func (s *logSpinner) Stop() {}
