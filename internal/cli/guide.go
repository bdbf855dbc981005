package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/flaskforge/flaskforge/internal/prereq"
	"github.com/flaskforge/flaskforge/pkg/models"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the next steps for a freshly scaffolded project",
	Long: `Show what to do after scaffolding: creating the virtual
environment, installing dependencies and starting the dev server,
plus links to the setup guides the scaffold assumes.`,
	PreRunE: validateGuideFlags,
	RunE:    runGuide,
}

func init() {
	rootCmd.AddCommand(guideCmd)
	guideCmd.Flags().String("workflow", "requirements", `Workflow to show steps for: "poetry" or "requirements"`)
}

func validateGuideFlags(cmd *cobra.Command, _ []string) error {
	if wf := getStringFlag(cmd, "workflow"); wf != "" {
		if _, ok := models.ParseWorkflow(wf); !ok {
			return fmt.Errorf("invalid --workflow value %q: must be \"poetry\" or \"requirements\"", wf)
		}
	}
	return nil
}

func runGuide(cmd *cobra.Command, _ []string) error {
	w, _ := models.ParseWorkflow(getStringFlag(cmd, "workflow"))
	md := guideMarkdown(w)

	rendered, err := renderMarkdown(md)
	if err != nil {
		// Fall back to the raw markdown rather than failing the command.
		rendered = md
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// guideMarkdown assembles the per-workflow next steps.
func guideMarkdown(w models.Workflow) string {
	var b strings.Builder

	b.WriteString("# Next steps\n\n")
	b.WriteString("1. Create or activate a virtual environment for this project.\n")

	if w == models.WorkflowPoetry {
		b.WriteString("2. From the project root, add the core dependencies in one go:\n\n")
		b.WriteString("   `poetry add flask flask-sqlalchemy flask-migrate flask-login flask-wtf flask-mail flask-moment python-dotenv email-validator pyjwt`\n\n")
		b.WriteString("   This updates `pyproject.toml` and lets Poetry generate a valid `poetry.lock`.\n")
		b.WriteString("   The scaffold intentionally does not create a placeholder lock file; if you\n")
		b.WriteString("   edit `pyproject.toml` by hand later, run `poetry lock` to refresh it.\n")
		b.WriteString("3. Start the dev server with `pf run` (alias for `poetry run flask`).\n")
	} else {
		b.WriteString("2. From the project root, run `pip install -r requirements.txt`.\n")
		b.WriteString("3. Whenever you change dependencies in that virtualenv, run `pip3 freeze > requirements.txt`.\n")
		b.WriteString("4. Start the dev server with `flask run` (inside the active virtualenv).\n")
	}

	b.WriteString("\n## Learning resources\n\n")
	for _, link := range prereq.GuideLinks() {
		b.WriteString("- " + link + "\n")
	}
	return b.String()
}
