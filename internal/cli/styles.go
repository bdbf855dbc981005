package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared lipgloss styles for command output.
var (
	cliPrimary = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#007D9C", Dark: "#00ADD8"}).
			Bold(true)

	cliSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#22C55E"})

	cliWarn = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#EAB308"})

	cliError = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})

	cliMuted = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})

	cliBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}).
			Padding(0, 2)
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symWarning() string { return cliWarn.Render("!") }
func symError() string   { return cliError.Render("✗") }

// PrintBanner prints the application banner with the version.
func PrintBanner(version string) {
	fmt.Println(cliPrimary.Render("flaskforge") + " " + cliMuted.Render(version))
}

// PrintWelcomeMessage prints the wizard introduction.
func PrintWelcomeMessage() {
	fmt.Println(`
This helper will create a new Flask project in your home directory,
with a clean, opinionated structure and starter code.

It supports two workflows:
  1) pyenv + Poetry
  2) pyenv + pyenv-virtualenv + requirements.txt

It assumes you already configured Git & GitHub, installed pyenv, and
selected a default Python version. It will not install or configure
those tools for you. Dependency installation (Flask, Flask-Login, ...)
is done manually in your virtual environment after the scaffold is
created.`)
	fmt.Println()
}

// kvPair is a label/value row for renderKeyValueLines.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key/value rows.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cliMuted.Render(fmt.Sprintf("%-*s", width+2, p.key)))
		b.WriteString(p.value)
	}
	return b.String()
}

// renderSuccessCard renders a bordered completion card.
func renderSuccessCard(title string, details ...string) string {
	lines := []string{symSuccess() + " " + cliPrimary.Render(title)}
	for _, d := range details {
		if d != "" {
			lines = append(lines, d)
		}
	}
	return cliBorder.Render(strings.Join(lines, "\n\n"))
}
