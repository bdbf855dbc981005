// Package wizard provides the interactive question flow that collects
// project settings before scaffolding.
package wizard

import "errors"

// Result holds the user's answers.
type Result struct {
	ProjectName string
	Description string
	Author      string
	Workflow    string // "poetry" or "requirements"

	// Poetry metadata, collected only for the poetry workflow.
	PackageName    string
	PackageVersion string
	AuthorEmail    string
	License        string
	RequiresPython string
}

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
)

// Question defines a single wizard question.
type Question struct {
	ID          string
	Type        QuestionType
	Title       string
	Description string
	Options     []Option            // Options for select questions.
	Default     string              // Static default value.
	DefaultFunc func(*Result) string // Computes the default from earlier answers.
	Required    bool
	Condition   func(*Result) bool // Skips the question when false.
}

// Option represents a selectable option.
type Option struct {
	Label string
	Value string
	Desc  string
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user aborts the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
)
