package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/flaskforge/flaskforge/internal/cli/wizard"
	"github.com/flaskforge/flaskforge/internal/config"
	"github.com/flaskforge/flaskforge/internal/prereq"
	"github.com/flaskforge/flaskforge/internal/scaffold"
	"github.com/flaskforge/flaskforge/internal/ui"
	"github.com/flaskforge/flaskforge/pkg/models"
	"github.com/flaskforge/flaskforge/pkg/version"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Scaffold a new Flask project",
	Long: `Scaffold a new Flask project in your home directory.

Without flags this runs an interactive wizard that asks for the project
name, description, author and dependency workflow. Every answer can
also be supplied as a flag, and --non-interactive skips the wizard
entirely.

Examples:
  flaskforge new                       Run the wizard
  flaskforge new blogapp               Wizard with the name pre-filled
  flaskforge new blogapp --workflow requirements --non-interactive`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateNewFlags,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("dir", "", "Target directory (default: ~/<project-name>)")
	newCmd.Flags().String("description", "", "Short project description")
	newCmd.Flags().String("author", "", "Author / owner name")
	newCmd.Flags().String("email", "", "Author email (poetry workflow)")
	newCmd.Flags().String("workflow", "", `Dependency workflow: "poetry" or "requirements"`)
	newCmd.Flags().String("package-name", "", "pyproject.toml package name (default: project name)")
	newCmd.Flags().String("package-version", "", "pyproject.toml version (default: 0.1.0)")
	newCmd.Flags().String("license", "", "License identifier (default: MIT)")
	newCmd.Flags().String("requires-python", "", "PEP 440 Python range (default: >=3.10,<4.0)")
	newCmd.Flags().Bool("non-interactive", false, "Skip the wizard; use flags and saved defaults")
	newCmd.Flags().Bool("force", false, "Scaffold into a non-empty directory (existing files are kept)")
	newCmd.Flags().Bool("skip-alias", false, "Do not add the pf alias for the poetry workflow")
	newCmd.Flags().Bool("skip-checks", false, "Skip the prerequisite tool checks")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// validateNewFlags validates flag values before execution.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	if wf := getStringFlag(cmd, "workflow"); wf != "" {
		if _, ok := models.ParseWorkflow(wf); !ok {
			return fmt.Errorf("invalid --workflow value %q: must be \"poetry\" or \"requirements\"", wf)
		}
	}
	return nil
}

// runNew executes the scaffold workflow: collect answers, gate on
// prerequisites, emit the project tree, report.
func runNew(cmd *cobra.Command, args []string) error {
	defaults := loadDefaults(cmd)

	opts := scaffold.Options{
		Description:    getStringFlag(cmd, "description"),
		Author:         getStringFlag(cmd, "author"),
		AuthorEmail:    getStringFlag(cmd, "email"),
		TargetDir:      getStringFlag(cmd, "dir"),
		PackageName:    getStringFlag(cmd, "package-name"),
		PackageVersion: getStringFlag(cmd, "package-version"),
		License:        getStringFlag(cmd, "license"),
		RequiresPython: getStringFlag(cmd, "requires-python"),
		Force:          getBoolFlag(cmd, "force"),
		SkipAlias:      getBoolFlag(cmd, "skip-alias"),
	}
	if len(args) > 0 {
		opts.ProjectName = args[0]
	}
	if wf, ok := models.ParseWorkflow(getStringFlag(cmd, "workflow")); ok {
		opts.Workflow = wf
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && isatty.IsTerminal(os.Stdin.Fd())

	if interactive {
		PrintBanner(version.GetVersion())
		PrintWelcomeMessage()

		result, err := wizard.Run(wizard.DefaultQuestions(defaults))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborting.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}
		applyWizardResult(&opts, result)
	}

	// Flags and wizard answers win; saved defaults fill the rest.
	if opts.Author == "" {
		opts.Author = defaults.Author
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = defaults.Email
	}
	if opts.License == "" {
		opts.License = defaults.License
	}
	if opts.RequiresPython == "" {
		opts.RequiresPython = defaults.RequiresPython
	}
	if opts.Workflow == "" {
		if wf, ok := models.ParseWorkflow(defaults.Workflow); ok {
			opts.Workflow = wf
		}
	}

	// Gate on the required tools before anything is written.
	if !getBoolFlag(cmd, "skip-checks") {
		if err := checkPrereqs(cmd, opts.Workflow); err != nil {
			return err
		}
	}

	return scaffoldProject(cmd, opts, interactive)
}

// applyWizardResult copies wizard answers into opts without overriding
// values already set by flags.
func applyWizardResult(opts *scaffold.Options, result *wizard.Result) {
	if opts.ProjectName == "" {
		opts.ProjectName = result.ProjectName
	}
	if opts.Description == "" {
		opts.Description = result.Description
	}
	if opts.Author == "" {
		opts.Author = result.Author
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = result.AuthorEmail
	}
	if opts.Workflow == "" {
		if wf, ok := models.ParseWorkflow(result.Workflow); ok {
			opts.Workflow = wf
		}
	}
	if opts.PackageName == "" {
		opts.PackageName = result.PackageName
	}
	if opts.PackageVersion == "" {
		opts.PackageVersion = result.PackageVersion
	}
	if opts.License == "" {
		opts.License = result.License
	}
	if opts.RequiresPython == "" {
		opts.RequiresPython = result.RequiresPython
	}
}

// loadDefaults reads the per-user defaults file, falling back to the
// compiled values when the file is unreadable.
func loadDefaults(cmd *cobra.Command) *config.Defaults {
	mgr := config.NewManager()
	defaults, err := mgr.Load()
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s ignoring defaults file: %v\n", symWarning(), err)
		defaults, _ = config.NewManagerWithPath("").Load()
	}
	return defaults
}

// checkPrereqs verifies the tools the chosen workflow needs and prints
// guide links when something is missing.
func checkPrereqs(cmd *cobra.Command, w models.Workflow) error {
	out := cmd.OutOrStdout()

	spin := ui.NewProgressWithWriter(ui.DefaultTheme(), ui.NewHeadlessManager(), out).
		StartSpinner("Checking prerequisites")
	checks := prereq.NewChecker().ForWorkflow(w)
	spin.Stop()

	missing := prereq.Missing(checks)
	if len(missing) == 0 {
		_, _ = fmt.Fprintln(out, symSuccess()+" Environment checks passed.")
		return nil
	}

	_, _ = fmt.Fprintln(out, symError()+" Prerequisite check failed:")
	for _, c := range missing {
		_, _ = fmt.Fprintf(out, "  %s %s: %s\n", symError(), c.Name, c.Detail)
		if c.Hint != "" {
			_, _ = fmt.Fprintf(out, "    %s\n", cliMuted.Render(c.Hint))
		}
	}

	_, _ = fmt.Fprintln(out, "\nYou can use these guides and helper repositories:")
	for _, link := range prereq.GuideLinks() {
		_, _ = fmt.Fprintf(out, "  - %s\n", link)
	}
	return fmt.Errorf("missing prerequisites for the %s workflow", w)
}

// scaffoldProject runs the initializer with progress reporting and
// renders the completion card.
func scaffoldProject(cmd *cobra.Command, opts scaffold.Options, interactive bool) error {
	out := cmd.OutOrStdout()

	progress := ui.NewProgress(ui.DefaultTheme(), ui.NewHeadlessManager())
	var bar ui.ProgressBar
	initializer := scaffold.NewInitializer(nil, scaffold.WithObserver(func(relPath string, done, total int) {
		if bar == nil {
			bar = progress.StartBar("Scaffolding", total)
		}
		bar.Advance(relPath)
	}))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := initializer.Run(ctx, opts)
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		if errors.Is(err, scaffold.ErrTargetNotEmpty) && interactive && !opts.Force {
			return confirmAndForce(cmd, opts)
		}
		return err
	}

	printResult(out, result)
	return nil
}

// confirmAndForce re-runs the scaffold with Force after an explicit
// confirmation. Existing files are still never overwritten.
func confirmAndForce(cmd *cobra.Command, opts scaffold.Options) error {
	proceed, err := wizard.Confirm(
		"Directory is not empty",
		"Scaffold into it anyway? Your existing files will be kept.",
	)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborting.")
			return nil
		}
		return err
	}
	if !proceed {
		return fmt.Errorf("target directory is not empty; choose a different project name or pass --force")
	}

	opts.Force = true
	return scaffoldProject(cmd, opts, false)
}

// printResult renders the completion card and the follow-up pointers.
func printResult(out io.Writer, result *scaffold.Result) {
	pairs := []kvPair{
		{"Location", result.TargetDir},
		{"Workflow", result.Workflow.String()},
		{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
	}
	if len(result.PreservedFiles) > 0 {
		pairs = append(pairs, kvPair{"Preserved", fmt.Sprintf("%d existing files kept", len(result.PreservedFiles))})
	}
	if result.AliasAdded {
		pairs = append(pairs, kvPair{"Alias", "pf='poetry run flask' added to " + result.AliasFile})
	}

	details := []string{renderKeyValueLines(pairs)}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}
	details = append(details, cliMuted.Render(
		fmt.Sprintf("Run \"flaskforge guide --workflow %s\" for the next steps.", result.Workflow)))

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Flask project scaffolded", details...))
}
