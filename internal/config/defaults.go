// Package config loads the optional per-user defaults file that pre-fills
// the wizard (author, email, preferred workflow, license, Python range).
// The file lives at ~/.config/flaskforge/config.yaml and can be relocated
// with the FLASKFORGE_CONFIG environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/flaskforge/flaskforge/internal/defs"
	"github.com/flaskforge/flaskforge/pkg/models"
)

// maxConfigSize caps the defaults file to keep a corrupt file from
// being slurped wholesale.
const maxConfigSize = 1 << 20 // 1MB

// Defaults are the values used to pre-fill wizard answers.
type Defaults struct {
	Author         string `yaml:"author"`
	Email          string `yaml:"email"`
	Workflow       string `yaml:"workflow"`
	License        string `yaml:"license"`
	RequiresPython string `yaml:"requires_python"`
}

// compiled returns the built-in fallback values.
func compiled() *Defaults {
	return &Defaults{
		Author:         defs.DefaultAuthor,
		Email:          "you@example.com",
		Workflow:       models.DefaultWorkflow.String(),
		License:        "MIT",
		RequiresPython: ">=3.10,<4.0",
	}
}

// Manager reads and writes the defaults file.
type Manager struct {
	path string
}

// NewManager creates a Manager for the standard defaults location.
func NewManager() *Manager {
	return &Manager{path: defaultsPath()}
}

// NewManagerWithPath creates a Manager for an explicit file (for tests).
func NewManagerWithPath(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the file this manager reads and writes.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the defaults file, merging file values over the compiled
// fallbacks. A missing file is not an error; the fallbacks are returned.
func (m *Manager) Load() (*Defaults, error) {
	d := compiled()

	info, err := os.Stat(m.path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat defaults file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("defaults file %s exceeds %d bytes", m.path, maxConfigSize)
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}

	var file Defaults
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", m.path, err)
	}

	if file.Author != "" {
		d.Author = file.Author
	}
	if file.Email != "" {
		d.Email = file.Email
	}
	if w, ok := models.ParseWorkflow(file.Workflow); ok {
		d.Workflow = w.String()
	}
	if file.License != "" {
		d.License = file.License
	}
	if file.RequiresPython != "" {
		d.RequiresPython = file.RequiresPython
	}
	return d, nil
}

// Save writes the defaults file, creating parent directories as needed.
func (m *Manager) Save(d *Defaults) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), defs.DirPerm); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(m.path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write defaults file: %w", err)
	}
	return nil
}

// defaultsPath resolves the defaults file location, honoring the
// FLASKFORGE_CONFIG override.
func defaultsPath() string {
	if env := os.Getenv("FLASKFORGE_CONFIG"); env != "" {
		return filepath.Clean(env)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(defs.ConfigDirName, defs.ConfigYAML)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, defs.ConfigDirName, defs.ConfigYAML)
}
