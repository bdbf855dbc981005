// Package scaffold orchestrates project generation: it resolves the
// target directory, deploys the embedded catalog for the chosen
// workflow, persists the file manifest, and wires the optional Poetry
// shell alias.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flaskforge/flaskforge/internal/defs"
	"github.com/flaskforge/flaskforge/internal/manifest"
	"github.com/flaskforge/flaskforge/internal/shell"
	"github.com/flaskforge/flaskforge/internal/template"
	"github.com/flaskforge/flaskforge/pkg/models"
	"github.com/flaskforge/flaskforge/pkg/version"
)

// Options carries everything collected from flags, config defaults and
// the wizard.
type Options struct {
	ProjectName string
	Description string
	Author      string
	AuthorEmail string
	Workflow    models.Workflow

	// TargetDir overrides the default ~/<ProjectName> location.
	TargetDir string
	// HomeDir overrides the detected home directory (for tests).
	HomeDir string

	// Poetry pyproject.toml metadata. Ignored for the requirements workflow.
	PackageName    string
	PackageVersion string
	License        string
	RequiresPython string

	// Force proceeds even when the target directory is not empty.
	// Existing files are still never overwritten.
	Force bool
	// SkipAlias disables the pf alias step for the Poetry workflow.
	SkipAlias bool
	// AliasRCFile overrides shell startup file detection.
	AliasRCFile string
}

// Result summarizes a completed run.
type Result struct {
	TargetDir      string
	Workflow       models.Workflow
	CreatedFiles   []string
	PreservedFiles []string
	Warnings       []string
	AliasAdded     bool
	AliasFile      string
}

// Observer is notified once per catalog file as deployment progresses.
type Observer func(relPath string, done, total int)

// InitializerOption configures an Initializer.
type InitializerOption func(*Initializer)

// WithObserver registers a progress callback.
func WithObserver(fn Observer) InitializerOption {
	return func(i *Initializer) {
		i.observer = fn
	}
}

// WithAliasConfigurator replaces the default alias configurator.
func WithAliasConfigurator(c *shell.AliasConfigurator) InitializerOption {
	return func(i *Initializer) {
		i.alias = c
	}
}

// Initializer generates Flask project scaffolds.
type Initializer struct {
	logger   *slog.Logger
	alias    *shell.AliasConfigurator
	observer Observer
}

// NewInitializer creates an Initializer. A nil logger discards output.
func NewInitializer(logger *slog.Logger, opts ...InitializerOption) *Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	i := &Initializer{
		logger: logger,
		alias:  shell.NewAliasConfigurator(logger),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run scaffolds a project according to opts. No file outside the target
// directory is touched except the shell startup file for the Poetry
// alias, and that file is only ever appended to.
func (i *Initializer) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(&opts); err != nil {
		return nil, err
	}

	root, err := resolveTarget(opts)
	if err != nil {
		return nil, err
	}

	if err := ensureTargetDir(root, opts.Force); err != nil {
		return nil, err
	}

	result := &Result{TargetDir: root, Workflow: opts.Workflow}

	mgr := manifest.NewManager()
	if _, err := mgr.Load(root); err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	data := template.NewContext(
		template.WithProject(opts.ProjectName, root),
		template.WithDescription(opts.Description),
		template.WithAuthor(opts.Author, opts.AuthorEmail),
		template.WithWorkflow(opts.Workflow),
		template.WithPoetryPackage(opts.PackageName, opts.PackageVersion),
		template.WithLicense(opts.License),
		template.WithRequiresPython(opts.RequiresPython),
		template.WithGeneratorVersion(version.GetVersion()),
	)

	if err := i.deployCatalog(ctx, root, mgr, data, opts.Workflow); err != nil {
		return nil, err
	}

	for _, relPath := range mgr.Paths() {
		entry, _ := mgr.GetEntry(relPath)
		if entry.Provenance == manifest.UserCreated {
			result.PreservedFiles = append(result.PreservedFiles, relPath)
		} else {
			result.CreatedFiles = append(result.CreatedFiles, relPath)
		}
	}

	if err := mgr.Save(); err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}

	if opts.Workflow == models.WorkflowPoetry && !opts.SkipAlias {
		i.configureAlias(opts, result)
	}

	i.logger.Info("project scaffolded",
		"path", root,
		"workflow", opts.Workflow.String(),
		"files", len(result.CreatedFiles))
	return result, nil
}

func (i *Initializer) deployCatalog(ctx context.Context, root string, mgr manifest.Manager, data *template.Context, w models.Workflow) error {
	paths, err := template.CatalogPaths(w)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	total := len(paths)
	done := 0

	deployOpts := []template.DeployerOption{
		template.WithLogger(i.logger),
	}
	if i.observer != nil {
		deployOpts = append(deployOpts, template.WithFileObserver(func(relPath string) {
			done++
			i.observer(relPath, done, total)
		}))
	}

	common, err := template.CommonTemplates()
	if err != nil {
		return fmt.Errorf("open common catalog: %w", err)
	}
	if err := template.NewDeployer(common, deployOpts...).Deploy(ctx, root, mgr, data); err != nil {
		return err
	}

	wf, err := template.WorkflowTemplates(w)
	if err != nil {
		return fmt.Errorf("open workflow catalog: %w", err)
	}
	return template.NewDeployer(wf, deployOpts...).Deploy(ctx, root, mgr, data)
}

// configureAlias runs the pf alias step. Failures degrade to warnings:
// the scaffold itself is already complete at this point.
func (i *Initializer) configureAlias(opts Options, result *Result) {
	res, err := i.alias.Configure(shell.AliasOptions{
		RCFile:  opts.AliasRCFile,
		HomeDir: opts.HomeDir,
	})
	if err != nil {
		i.logger.Warn("alias setup failed", "error", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not add pf alias: %v", err))
		return
	}
	if res.Skipped {
		result.Warnings = append(result.Warnings, "pf alias skipped on this platform")
		return
	}
	result.AliasAdded = res.Added
	result.AliasFile = res.RCFile
}

func validate(opts *Options) error {
	if opts.ProjectName == "" {
		opts.ProjectName = defs.DefaultProjectName
	}
	if strings.ContainsAny(opts.ProjectName, "/\\") || opts.ProjectName == "." || opts.ProjectName == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, opts.ProjectName)
	}
	if opts.Description == "" {
		opts.Description = defs.DefaultDescription
	}
	if opts.Author == "" {
		opts.Author = defs.DefaultAuthor
	}
	if opts.Workflow == "" {
		opts.Workflow = models.DefaultWorkflow
	}
	if !opts.Workflow.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWorkflow, opts.Workflow)
	}
	return nil
}

// resolveTarget picks the project root: an explicit TargetDir wins,
// otherwise the project lands in the user's home directory.
func resolveTarget(opts Options) (string, error) {
	if opts.TargetDir != "" {
		abs, err := filepath.Abs(opts.TargetDir)
		if err != nil {
			return "", fmt.Errorf("resolve target dir: %w", err)
		}
		return abs, nil
	}

	home := opts.HomeDir
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}
	return filepath.Join(home, opts.ProjectName), nil
}

// ensureTargetDir creates the project root. An existing non-empty
// directory aborts the run unless force is set; nothing is written in
// the abort case.
func ensureTargetDir(root string, force bool) error {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(root, defs.DirPerm); err != nil {
			return fmt.Errorf("create project directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect project directory: %w", err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("%w: %s", ErrTargetNotEmpty, root)
	}
	return nil
}
