package wizard

import (
	"github.com/flaskforge/flaskforge/internal/config"
	"github.com/flaskforge/flaskforge/internal/defs"
	"github.com/flaskforge/flaskforge/pkg/models"
)

// DefaultQuestions builds the question flow, pre-filled from the user's
// saved defaults. The Poetry metadata questions mirror `poetry init` and
// only appear when the poetry workflow is selected.
func DefaultQuestions(defaults *config.Defaults) []Question {
	if defaults == nil {
		d := config.NewManagerWithPath("")
		defaults, _ = d.Load()
	}

	poetryOnly := func(r *Result) bool {
		return r.Workflow == models.WorkflowPoetry.String()
	}

	return []Question{
		{
			ID:          "workflow",
			Type:        QuestionTypeSelect,
			Title:       "Choose your environment workflow",
			Description: "Both assume pyenv manages your Python versions.",
			Options: []Option{
				{Label: "pyenv + Poetry", Value: "poetry", Desc: "pyproject.toml"},
				{Label: "pyenv + pyenv-virtualenv", Value: "requirements", Desc: "requirements.txt"},
			},
			Default: defaults.Workflow,
		},
		{
			ID:          "project_name",
			Type:        QuestionTypeInput,
			Title:       "Project folder name",
			Description: "The project will be created in your home directory.",
			Default:     defs.DefaultProjectName,
			Required:    true,
		},
		{
			ID:      "description",
			Type:    QuestionTypeInput,
			Title:   "Short project description",
			Default: defs.DefaultDescription,
		},
		{
			ID:      "author",
			Type:    QuestionTypeInput,
			Title:   "Author / owner name",
			Default: defaults.Author,
		},
		{
			ID:          "package_name",
			Type:        QuestionTypeInput,
			Title:       "Package name",
			Description: "Goes into pyproject.toml.",
			DefaultFunc: func(r *Result) string { return r.ProjectName },
			Condition:   poetryOnly,
		},
		{
			ID:        "package_version",
			Type:      QuestionTypeInput,
			Title:     "Version",
			Default:   "0.1.0",
			Condition: poetryOnly,
		},
		{
			ID:        "author_email",
			Type:      QuestionTypeInput,
			Title:     "Author email",
			Default:   defaults.Email,
			Condition: poetryOnly,
		},
		{
			ID:          "license",
			Type:        QuestionTypeInput,
			Title:       "License identifier",
			Description: "Used alongside the LICENSE file.",
			Default:     defaults.License,
			Condition:   poetryOnly,
		},
		{
			ID:          "requires_python",
			Type:        QuestionTypeInput,
			Title:       "Required Python version",
			Description: "A PEP 440 range.",
			Default:     defaults.RequiresPython,
			Condition:   poetryOnly,
		},
	}
}
