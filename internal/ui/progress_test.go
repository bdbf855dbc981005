package ui

import (
	"bytes"
	"strings"
	"testing"
)

func headlessProgress(buf *bytes.Buffer) *Progress {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)
	return NewProgressWithWriter(DefaultTheme(), hm, buf)
}

func TestHeadlessManager(t *testing.T) {
	hm := NewHeadlessManager()

	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless not honored")
	}

	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive not honored")
	}

	hm.ClearForce()
	// After clearing, detection falls back to the TTY state; under
	// `go test` stdin is not a terminal.
	if !hm.IsHeadless() {
		t.Error("expected headless without a TTY")
	}
}

func TestLogProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := headlessProgress(&buf).StartBar("Scaffolding", 3)

	bar.Advance("README.md")
	bar.Advance("config.py")
	bar.Done()

	out := buf.String()
	if !strings.Contains(out, "[1/3] README.md") {
		t.Errorf("missing first step: %q", out)
	}
	if !strings.Contains(out, "[2/3] config.py") {
		t.Errorf("missing second step: %q", out)
	}
	if !strings.Contains(out, "[3/3] Scaffolding") {
		t.Errorf("missing completion line: %q", out)
	}
}

func TestLogProgressBarClampsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := headlessProgress(&buf).StartBar("Scaffolding", 1)

	bar.Advance("a")
	bar.Advance("b")

	if strings.Contains(buf.String(), "[2/1]") {
		t.Errorf("bar overflowed total: %q", buf.String())
	}
}

func TestLogSpinner(t *testing.T) {
	var buf bytes.Buffer
	sp := headlessProgress(&buf).StartSpinner("Checking tools")
	sp.SetTitle("Checking pyenv")
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "Checking tools") || !strings.Contains(out, "Checking pyenv") {
		t.Errorf("spinner output incomplete: %q", out)
	}
}

func TestNoColorForcesHeadlessWidgets(t *testing.T) {
	var buf bytes.Buffer
	theme := DefaultTheme()
	theme.NoColor = true

	hm := NewHeadlessManager()
	hm.ForceHeadless(false) // interactive TTY, but NO_COLOR set

	bar := NewProgressWithWriter(theme, hm, &buf).StartBar("Scaffolding", 1)
	bar.Advance("x")
	bar.Done()

	if buf.Len() == 0 {
		t.Error("expected plain log output under NO_COLOR")
	}
}
