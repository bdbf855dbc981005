// Package models defines the shared value types of the flaskforge CLI.
package models

// Workflow is the dependency-management strategy used by the generated
// project: Poetry with a pyproject.toml, or pyenv-virtualenv with a
// plain requirements.txt.
type Workflow string

const (
	// WorkflowPoetry manages dependencies with Poetry (pyproject.toml).
	WorkflowPoetry Workflow = "poetry"
	// WorkflowRequirements manages dependencies with pip (requirements.txt).
	WorkflowRequirements Workflow = "requirements"
)

// DefaultWorkflow is used when no workflow was selected explicitly.
const DefaultWorkflow = WorkflowRequirements

// IsValid reports whether w is a known workflow value.
func (w Workflow) IsValid() bool {
	return w == WorkflowPoetry || w == WorkflowRequirements
}

// String returns the canonical string form of the workflow.
func (w Workflow) String() string {
	return string(w)
}

// ParseWorkflow normalizes a user-supplied workflow string.
// The second return value is false when the input is not a known workflow.
func ParseWorkflow(s string) (Workflow, bool) {
	switch s {
	case string(WorkflowPoetry):
		return WorkflowPoetry, true
	case string(WorkflowRequirements), "requirements.txt", "pip":
		return WorkflowRequirements, true
	default:
		return "", false
	}
}
