// Package ui renders terminal feedback for long-running steps: an
// animated progress bar while the scaffold is emitted and a spinner
// while prerequisites are probed. Without a TTY both degrade to plain
// log lines so the tool stays usable in scripts and CI.
package ui

import "os"

// Colors holds the hex values used by interactive widgets.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
}

// Theme controls widget styling.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// DefaultTheme returns the flaskforge palette, honoring the NO_COLOR
// convention.
func DefaultTheme() *Theme {
	return &Theme{
		NoColor: os.Getenv("NO_COLOR") != "",
		Colors: Colors{
			Primary:   "#00ADD8",
			Secondary: "#5DC9E2",
			Success:   "#22C55E",
			Warning:   "#EAB308",
			Error:     "#EF4444",
		},
	}
}
