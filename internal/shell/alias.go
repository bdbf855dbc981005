// Package shell appends a convenience alias to the user's shell startup
// file. The append is idempotent: an existing `alias pf=` line, whatever
// its quoting, is left untouched and nothing is rewritten.
package shell

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/flaskforge/flaskforge/internal/defs"
)

// DefaultAlias is the line added for the Poetry workflow.
const DefaultAlias = "alias pf='poetry run flask'"

// aliasPrefix identifies an existing pf alias regardless of quote style.
const aliasPrefix = "alias pf="

// AliasOptions configures a Configure call. Zero values mean "detect".
type AliasOptions struct {
	Alias   string // Alias line to append. Defaults to DefaultAlias.
	RCFile  string // Startup file to modify. Defaults to shell detection.
	Shell   string // $SHELL override, used only when RCFile is empty.
	HomeDir string // Home directory override, used only when RCFile is empty.
}

// AliasResult reports what Configure did.
type AliasResult struct {
	Skipped bool   // True when the platform or shell is unsupported.
	RCFile  string // The startup file that was inspected or modified.
	Added   bool   // True when the alias line was appended.
}

// AliasConfigurator appends shell aliases.
type AliasConfigurator struct {
	logger *slog.Logger
}

// NewAliasConfigurator creates an AliasConfigurator. A nil logger discards output.
func NewAliasConfigurator(logger *slog.Logger) *AliasConfigurator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &AliasConfigurator{logger: logger}
}

// Configure ensures the alias line is present in the startup file.
// Existing content is never removed or rewritten; at most one line is
// appended. On Windows the call is skipped entirely.
func (c *AliasConfigurator) Configure(opts AliasOptions) (*AliasResult, error) {
	if opts.RCFile == "" && runtime.GOOS == "windows" {
		return &AliasResult{Skipped: true}, nil
	}

	alias := opts.Alias
	if alias == "" {
		alias = DefaultAlias
	}

	rcFile := opts.RCFile
	if rcFile == "" {
		var err error
		rcFile, err = detectRCFile(opts.Shell, opts.HomeDir)
		if err != nil {
			return nil, err
		}
	}

	content, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", rcFile, err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), aliasPrefix) {
			c.logger.Info("alias already present", "file", rcFile)
			return &AliasResult{RCFile: rcFile}, nil
		}
	}

	line := alias + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		line = "\n" + line
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defs.FilePerm)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rcFile, err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write %s: %w", rcFile, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write %s: %w", rcFile, err)
	}

	c.logger.Info("alias added", "file", rcFile, "alias", alias)
	return &AliasResult{RCFile: rcFile, Added: true}, nil
}

// detectRCFile picks ~/.zshrc for zsh and ~/.bashrc for everything else,
// mirroring how the login shell sources its startup file.
func detectRCFile(shellOverride, homeOverride string) (string, error) {
	home := homeOverride
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}

	sh := shellOverride
	if sh == "" {
		sh = os.Getenv("SHELL")
	}
	if strings.HasSuffix(sh, "zsh") {
		return filepath.Join(home, ".zshrc"), nil
	}
	return filepath.Join(home, ".bashrc"), nil
}
