package template

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flaskforge/flaskforge/internal/defs"
	"github.com/flaskforge/flaskforge/internal/manifest"
)

// tmplSuffix marks files that pass through the strict renderer before
// deployment. Everything else in the catalog is copied byte for byte,
// which keeps the Jinja templates inside app/templates/ untouched.
const tmplSuffix = ".tmpl"

// Deployer writes a template catalog into a project root.
type Deployer interface {
	// Deploy walks the catalog, rendering .tmpl files with data and
	// copying everything else verbatim. Files that already exist on disk
	// are never overwritten; they are recorded as user-created instead.
	Deploy(ctx context.Context, projectRoot string, mgr manifest.Manager, data *Context) error
}

// DeployerOption configures a Deployer.
type DeployerOption func(*deployer)

// WithRenderer replaces the default strict renderer.
func WithRenderer(r Renderer) DeployerOption {
	return func(d *deployer) {
		d.renderer = r
	}
}

// WithFileObserver registers a callback invoked once per catalog file
// after it has been handled. Used to drive progress reporting.
func WithFileObserver(fn func(relPath string)) DeployerOption {
	return func(d *deployer) {
		d.observer = fn
	}
}

// WithLogger sets the deployer's logger.
func WithLogger(logger *slog.Logger) DeployerOption {
	return func(d *deployer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

type deployer struct {
	fsys     fs.FS
	renderer Renderer
	observer func(relPath string)
	logger   *slog.Logger
}

// NewDeployer creates a Deployer over the given catalog filesystem.
func NewDeployer(fsys fs.FS, opts ...DeployerOption) Deployer {
	d := &deployer{
		fsys:   fsys,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.renderer == nil {
		d.renderer = NewRenderer(fsys)
	}
	return d
}

func (d *deployer) Deploy(ctx context.Context, projectRoot string, mgr manifest.Manager, data *Context) error {
	return fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk catalog at %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || path == "." {
			return nil
		}
		return d.deployFile(projectRoot, mgr, path, data)
	})
}

func (d *deployer) deployFile(projectRoot string, mgr manifest.Manager, path string, data *Context) error {
	relPath := strings.TrimSuffix(path, tmplSuffix)

	destPath, err := validateDeployPath(projectRoot, relPath)
	if err != nil {
		return err
	}

	var content []byte
	if strings.HasSuffix(path, tmplSuffix) {
		content, err = d.renderer.Render(path, data)
		if err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
	} else {
		content, err = fs.ReadFile(d.fsys, path)
		if err != nil {
			return fmt.Errorf("read catalog file %s: %w", path, err)
		}
	}

	// An existing file always wins over the catalog. Record it so later
	// runs can report what was preserved.
	if _, err := os.Stat(destPath); err == nil {
		d.logger.Warn("file exists, keeping user version", "path", relPath)
		if mgr != nil {
			if err := mgr.Track(relPath, manifest.UserCreated, ""); err != nil {
				return fmt.Errorf("track %s: %w", relPath, err)
			}
		}
		d.observe(relPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), defs.DirPerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(destPath, content, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}

	if mgr != nil {
		if err := mgr.Track(relPath, manifest.TemplateManaged, manifest.HashBytes(content)); err != nil {
			return fmt.Errorf("track %s: %w", relPath, err)
		}
	}
	d.observe(relPath)
	return nil
}

func (d *deployer) observe(relPath string) {
	if d.observer != nil {
		d.observer(relPath)
	}
}

// validateDeployPath resolves relPath under projectRoot and rejects
// anything that would land outside it.
func validateDeployPath(projectRoot, relPath string) (string, error) {
	cleanRoot := filepath.Clean(projectRoot)
	dest := filepath.Join(cleanRoot, filepath.FromSlash(relPath))
	if dest != cleanRoot && !strings.HasPrefix(dest, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, relPath)
	}
	return dest, nil
}
