package prereq

import (
	"errors"
	"strings"
	"testing"

	"github.com/flaskforge/flaskforge/pkg/models"
)

var errNotFound = errors.New("executable file not found in $PATH")

// fakeEnv builds a Checker where only the named tools exist and
// `pyenv virtualenvs` succeeds iff virtualenvsOK is true.
func fakeEnv(present map[string]bool, virtualenvsOK bool) *Checker {
	look := func(file string) (string, error) {
		if present[file] {
			return "/usr/local/bin/" + file, nil
		}
		return "", errNotFound
	}
	run := func(name string, args ...string) error {
		if name == "pyenv" && len(args) == 1 && args[0] == "virtualenvs" {
			if virtualenvsOK {
				return nil
			}
			return errors.New("pyenv: no such command `virtualenvs'")
		}
		return nil
	}
	return NewCheckerWithLookup(look, run)
}

func TestCheckPyenv(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true}, true)
		check := c.CheckPyenv()
		if check.Status != StatusOK {
			t.Errorf("Status = %v, want StatusOK", check.Status)
		}
		if !strings.Contains(check.Detail, "path:") {
			t.Errorf("Detail = %q, want resolved path", check.Detail)
		}
	})

	t.Run("missing", func(t *testing.T) {
		c := fakeEnv(nil, false)
		check := c.CheckPyenv()
		if check.Status != StatusFail {
			t.Errorf("Status = %v, want StatusFail", check.Status)
		}
		if check.Hint == "" {
			t.Error("missing pyenv should carry a remediation hint")
		}
	})
}

func TestCheckPyenvVirtualenv(t *testing.T) {
	t.Run("plugin_installed", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true}, true)
		if got := c.CheckPyenvVirtualenv().Status; got != StatusOK {
			t.Errorf("Status = %v, want StatusOK", got)
		}
	})

	t.Run("plugin_missing", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true}, false)
		if got := c.CheckPyenvVirtualenv().Status; got != StatusFail {
			t.Errorf("Status = %v, want StatusFail", got)
		}
	})

	t.Run("no_pyenv_at_all", func(t *testing.T) {
		c := fakeEnv(nil, true)
		if got := c.CheckPyenvVirtualenv().Status; got != StatusFail {
			t.Errorf("Status = %v, want StatusFail", got)
		}
	})
}

func TestForWorkflow(t *testing.T) {
	t.Run("poetry_requires_pyenv_and_poetry", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true}, true)
		failed := Missing(c.ForWorkflow(models.WorkflowPoetry))
		if len(failed) != 1 || failed[0].Name != "poetry" {
			t.Errorf("failed checks = %+v, want only poetry", failed)
		}
	})

	t.Run("requirements_requires_pyenv_virtualenv", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true, "poetry": true}, false)
		failed := Missing(c.ForWorkflow(models.WorkflowRequirements))
		if len(failed) != 1 || failed[0].Name != "pyenv-virtualenv" {
			t.Errorf("failed checks = %+v, want only pyenv-virtualenv", failed)
		}
	})

	t.Run("everything_present", func(t *testing.T) {
		c := fakeEnv(map[string]bool{"pyenv": true, "poetry": true}, true)
		for _, w := range []models.Workflow{models.WorkflowPoetry, models.WorkflowRequirements} {
			if failed := Missing(c.ForWorkflow(w)); len(failed) != 0 {
				t.Errorf("workflow %s: unexpected failures %+v", w, failed)
			}
		}
	})
}

func TestGuideLinks(t *testing.T) {
	links := GuideLinks()
	if len(links) == 0 {
		t.Fatal("GuideLinks() should not be empty")
	}
	for _, l := range links {
		if !strings.HasPrefix(l, "https://") {
			t.Errorf("link %q is not an https URL", l)
		}
	}
	// Returned slice must be a copy.
	links[0] = "mutated"
	if GuideLinks()[0] == "mutated" {
		t.Error("GuideLinks() should return a defensive copy")
	}
}
