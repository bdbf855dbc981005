// Package cli wires the flaskforge command tree: `new` scaffolds a
// project, `doctor` inspects the toolchain, `guide` prints the
// follow-up instructions.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flaskforge/flaskforge/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "flaskforge",
	Short: "Scaffold opinionated Flask starter projects",
	Long: `flaskforge creates a new Flask project with a blueprint-based
structure (main, auth, admin, errors), starter templates and static
assets, ready to run after you install the dependencies.

It supports two dependency workflows:
  - pyenv + Poetry (pyproject.toml)
  - pyenv + pyenv-virtualenv (requirements.txt)

flaskforge checks for the required tools but never installs them; run
"flaskforge doctor" to see what is missing and where to find setup guides.`,
	Version:      version.GetVersion(),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("flaskforge %s\n", version.GetVersion()))
}
