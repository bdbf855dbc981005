// Package prereq verifies that the external tools a chosen workflow
// relies on are present on the execution path. It never installs or
// configures anything; missing tools are reported with guide links.
package prereq

import (
	"fmt"
	"os/exec"

	"github.com/flaskforge/flaskforge/pkg/models"
)

// Status is the outcome of a single environment check.
type Status int

const (
	// StatusOK means the tool was found and usable.
	StatusOK Status = iota
	// StatusWarn means the tool is optional or only partially verified.
	StatusWarn
	// StatusFail means a required tool is missing.
	StatusFail
)

// Check is the result of probing one external tool.
type Check struct {
	Name   string // Display name, e.g. "pyenv".
	Status Status
	Detail string // Resolved path or probe output.
	Hint   string // Remediation hint shown on failure.
}

// Checker probes the environment. The lookup functions are injectable
// so tests can simulate missing or present tools.
type Checker struct {
	lookPath func(file string) (string, error)
	run      func(name string, args ...string) error
}

// NewChecker creates a Checker backed by the real PATH and process table.
func NewChecker() *Checker {
	return &Checker{
		lookPath: exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// NewCheckerWithLookup creates a Checker with custom probe functions (for tests).
func NewCheckerWithLookup(lookPath func(string) (string, error), run func(string, ...string) error) *Checker {
	return &Checker{lookPath: lookPath, run: run}
}

// CheckPython reports whether a python3 interpreter is on PATH.
// Informational only: pyenv shims may provide python without python3.
func (c *Checker) CheckPython() Check {
	path, err := c.lookPath("python3")
	if err != nil {
		return Check{
			Name:   "python3",
			Status: StatusWarn,
			Hint:   "Install a Python version via pyenv, e.g. `pyenv install 3.12`.",
		}
	}
	return Check{Name: "python3", Status: StatusOK, Detail: "path: " + path}
}

// CheckPyenv reports whether pyenv is on PATH. pyenv is required for
// every workflow.
func (c *Checker) CheckPyenv() Check {
	path, err := c.lookPath("pyenv")
	if err != nil {
		return Check{
			Name:   "pyenv",
			Status: StatusFail,
			Hint:   "pyenv not found on PATH. " + PyenvInstallHint(),
		}
	}
	return Check{Name: "pyenv", Status: StatusOK, Detail: "path: " + path}
}

// CheckPyenvVirtualenv reports whether the pyenv-virtualenv plugin works.
// The probe runs `pyenv virtualenvs`, which only succeeds when the plugin
// is installed.
func (c *Checker) CheckPyenvVirtualenv() Check {
	if _, err := c.lookPath("pyenv"); err != nil {
		return Check{
			Name:   "pyenv-virtualenv",
			Status: StatusFail,
			Hint:   "pyenv-virtualenv requires pyenv. " + PyenvInstallHint(),
		}
	}
	if err := c.run("pyenv", "virtualenvs"); err != nil {
		return Check{
			Name:   "pyenv-virtualenv",
			Status: StatusFail,
			Hint:   "pyenv-virtualenv plugin does not appear to be installed.",
		}
	}
	return Check{Name: "pyenv-virtualenv", Status: StatusOK, Detail: "probe: pyenv virtualenvs"}
}

// CheckPoetry reports whether poetry is on PATH.
func (c *Checker) CheckPoetry() Check {
	path, err := c.lookPath("poetry")
	if err != nil {
		return Check{
			Name:   "poetry",
			Status: StatusFail,
			Hint:   "Poetry not found on PATH. Install from https://python-poetry.org/docs/#installation.",
		}
	}
	return Check{Name: "poetry", Status: StatusOK, Detail: "path: " + path}
}

// ForWorkflow returns the checks that gate project generation for the
// chosen workflow: pyenv always, plus poetry or pyenv-virtualenv.
func (c *Checker) ForWorkflow(w models.Workflow) []Check {
	checks := []Check{c.CheckPyenv()}
	switch w {
	case models.WorkflowPoetry:
		checks = append(checks, c.CheckPoetry())
	default:
		checks = append(checks, c.CheckPyenvVirtualenv())
	}
	return checks
}

// All returns every known check, for `flaskforge doctor`.
func (c *Checker) All() []Check {
	return []Check{
		c.CheckPython(),
		c.CheckPyenv(),
		c.CheckPyenvVirtualenv(),
		c.CheckPoetry(),
	}
}

// Missing filters checks down to hard failures.
func Missing(checks []Check) []Check {
	var failed []Check
	for _, ch := range checks {
		if ch.Status == StatusFail {
			failed = append(failed, ch)
		}
	}
	return failed
}

// PyenvInstallHint returns a short pointer to the pyenv setup helper.
func PyenvInstallHint() string {
	return fmt.Sprintf("See the setup helper: %s", guideLinks[1])
}

// guideLinks are the companion guides referenced when a prerequisite is
// missing. Order matters: git/github first, then pyenv, then Flask notes.
var guideLinks = []string{
	"https://github.com/GitauHarrison/git_github_configurations",
	"https://github.com/GitauHarrison/install_new_python_version_in_your_os?tab=readme-ov-file#python-version--pyenv-virtualenv-setup-helper",
	"https://github.com/GitauHarrison/notes_on_general_topics/blob/main/01_new_python_version_macOS_virtualenv.md",
	"https://github.com/GitauHarrison/notes_on_general_topics/blob/main/03_working_with_virtual_envs_in_flask.md",
}

// GuideLinks returns the remediation guide URLs printed when the
// prerequisite gate fails.
func GuideLinks() []string {
	links := make([]string, len(guideLinks))
	copy(links, guideLinks)
	return links
}
