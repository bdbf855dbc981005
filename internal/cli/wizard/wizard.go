package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Run executes the wizard and returns the collected answers.
// Each question runs as its own independent huh.Form to avoid the huh
// v0.8.x YOffset scroll bug that occurs when multiple groups share a
// single viewport.
func Run(questions []Question) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{}
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]
		if q.Condition != nil && !q.Condition(result) {
			continue
		}

		form := huh.NewForm(buildQuestionGroup(q, result)).
			WithTheme(theme).
			WithAccessible(false)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return result, nil
}

// Confirm asks a yes/no question, used before scaffolding into a
// directory that already has files in it.
func Confirm(title, description string) (bool, error) {
	var answer bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Continue").
			Negative("Abort").
			Value(&answer),
	)).WithTheme(newWizardTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm error: %w", err)
	}
	return answer, nil
}

// buildQuestionGroup creates a huh.Group for a single question.
func buildQuestionGroup(q *Question, result *Result) *huh.Group {
	var field huh.Field

	switch q.Type {
	case QuestionTypeSelect:
		field = buildSelectField(q, result)
	case QuestionTypeInput:
		field = buildInputField(q, result)
	}

	return huh.NewGroup(field)
}

// buildSelectField creates a huh.Select field for a select-type question.
func buildSelectField(q *Question, result *Result) *huh.Select[string] {
	selected := q.Default

	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		key := opt.Label
		if opt.Desc != "" {
			key = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(key, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Description).
		Options(opts...).
		Value(&selected)

	// Store the answer as part of validation, which huh runs on every
	// confirmed value.
	sel.Validate(func(val string) error {
		saveAnswer(q.ID, val, result)
		return nil
	})

	return sel
}

// buildInputField creates a huh.Input field for an input-type question.
func buildInputField(q *Question, result *Result) *huh.Input {
	def := q.Default
	if q.DefaultFunc != nil {
		if v := q.DefaultFunc(result); v != "" {
			def = v
		}
	}
	value := def

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if def != "" {
		inp = inp.Placeholder(def)
	}

	qID := q.ID
	required := q.Required
	inp = inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && def != "" {
			v = def
		}
		if required && v == "" {
			return errors.New("a value is required")
		}
		saveAnswer(qID, v, result)
		return nil
	})

	return inp
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *Result) {
	switch id {
	case "workflow":
		result.Workflow = value
	case "project_name":
		result.ProjectName = value
	case "description":
		result.Description = value
	case "author":
		result.Author = value
	case "package_name":
		result.PackageName = value
	case "package_version":
		result.PackageVersion = value
	case "author_email":
		result.AuthorEmail = value
	case "license":
		result.License = value
	case "requires_python":
		result.RequiresPython = value
	}
}

// newWizardTheme creates a huh.Theme with flaskforge branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#007D9C", Dark: "#00ADD8"}
	secondary := lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#5DC9E2"}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#22C55E"}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
