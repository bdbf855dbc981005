package template

import (
	"runtime"
	"time"

	"github.com/flaskforge/flaskforge/internal/defs"
	"github.com/flaskforge/flaskforge/pkg/models"
)

// Context provides the data substituted into the scaffold catalog.
// All fields are exported for use with Go's text/template package.
type Context struct {
	// Project
	ProjectName string
	ProjectRoot string
	Description string

	// Author
	Author      string
	AuthorEmail string

	// Workflow
	Workflow string // "poetry" or "requirements"

	// Poetry package metadata (pyproject.toml)
	PackageName    string
	PackageVersion string
	RequiresPython string
	License        string

	// Meta
	Year             int    // Copyright year for the LICENSE file.
	GeneratorVersion string // flaskforge version that produced the tree.
	Platform         string // "darwin", "linux", "windows".
}

// Option configures a Context.
type Option func(*Context)

// NewContext creates a Context with sensible defaults, then applies options.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		ProjectName:    defs.DefaultProjectName,
		Description:    defs.DefaultDescription,
		Author:         defs.DefaultAuthor,
		Workflow:       models.DefaultWorkflow.String(),
		PackageVersion: "0.1.0",
		RequiresPython: ">=3.10,<4.0",
		License:        "MIT",
		Year:           time.Now().Year(),
		Platform:       runtime.GOOS,
	}

	for _, opt := range opts {
		opt(ctx)
	}

	// The Poetry package name follows the project name unless set explicitly.
	if ctx.PackageName == "" {
		ctx.PackageName = ctx.ProjectName
	}

	return ctx
}

// WithProject sets the project name and root.
func WithProject(name, root string) Option {
	return func(c *Context) {
		if name != "" {
			c.ProjectName = name
		}
		c.ProjectRoot = root
	}
}

// WithDescription sets the short project description.
func WithDescription(desc string) Option {
	return func(c *Context) {
		if desc != "" {
			c.Description = desc
		}
	}
}

// WithAuthor sets the author name and optional email.
func WithAuthor(name, email string) Option {
	return func(c *Context) {
		if name != "" {
			c.Author = name
		}
		c.AuthorEmail = email
	}
}

// WithWorkflow sets the dependency-management workflow.
func WithWorkflow(w models.Workflow) Option {
	return func(c *Context) {
		if w.IsValid() {
			c.Workflow = w.String()
		}
	}
}

// WithPoetryPackage sets the pyproject.toml package name and version.
func WithPoetryPackage(name, version string) Option {
	return func(c *Context) {
		c.PackageName = name
		if version != "" {
			c.PackageVersion = version
		}
	}
}

// WithRequiresPython sets the PEP 440 Python version range.
func WithRequiresPython(rng string) Option {
	return func(c *Context) {
		if rng != "" {
			c.RequiresPython = rng
		}
	}
}

// WithLicense sets the license identifier.
func WithLicense(id string) Option {
	return func(c *Context) {
		if id != "" {
			c.License = id
		}
	}
}

// WithYear sets the copyright year.
func WithYear(year int) Option {
	return func(c *Context) {
		if year > 0 {
			c.Year = year
		}
	}
}

// WithGeneratorVersion sets the flaskforge version string.
func WithGeneratorVersion(v string) Option {
	return func(c *Context) {
		c.GeneratorVersion = v
	}
}

// WithPlatform sets the target platform.
func WithPlatform(platform string) Option {
	return func(c *Context) {
		if platform != "" {
			c.Platform = platform
		}
	}
}
