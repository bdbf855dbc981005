package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flaskforge/flaskforge/internal/prereq"
	"github.com/flaskforge/flaskforge/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Python toolchain flaskforge relies on",
	Long: `Check whether the tools the two workflows rely on are available:
python3, pyenv, the pyenv-virtualenv plugin, and Poetry.

The command reports every tool; "flaskforge new" only requires the
tools of the workflow you pick.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().Bool("verbose", false, "Show install hints for every check")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	verbose := getBoolFlag(cmd, "verbose")

	spin := ui.NewProgressWithWriter(ui.DefaultTheme(), ui.NewHeadlessManager(), out).
		StartSpinner("Probing the Python toolchain")
	checks := prereq.NewChecker().All()
	spin.Stop()

	failed := 0

	for _, c := range checks {
		var sym string
		switch c.Status {
		case prereq.StatusOK:
			sym = symSuccess()
		case prereq.StatusWarn:
			sym = symWarning()
		default:
			sym = symError()
			failed++
		}
		_, _ = fmt.Fprintf(out, "%s %-18s %s\n", sym, c.Name, c.Detail)
		if c.Hint != "" && (verbose || c.Status == prereq.StatusFail) {
			_, _ = fmt.Fprintf(out, "  %s\n", cliMuted.Render(c.Hint))
		}
	}

	if failed == 0 {
		_, _ = fmt.Fprintln(out, "\n"+symSuccess()+" Environment checks passed.")
		return nil
	}

	_, _ = fmt.Fprintln(out, "\nYou can use these guides and helper repositories:")
	for _, link := range prereq.GuideLinks() {
		_, _ = fmt.Fprintf(out, "  - %s\n", link)
	}
	return fmt.Errorf("%d of %d checks failed", failed, len(checks))
}
