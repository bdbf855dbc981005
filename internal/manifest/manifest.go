// Package manifest tracks the files flaskforge emits into a project so
// later runs can tell generated files apart from user-created ones.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/flaskforge/flaskforge/internal/defs"
)

// Provenance describes who owns a tracked file.
type Provenance string

const (
	// TemplateManaged marks a file written from the embedded catalog.
	TemplateManaged Provenance = "template_managed"
	// UserCreated marks a file that already existed at emission time.
	UserCreated Provenance = "user_created"
)

// Entry is a single tracked file.
type Entry struct {
	Path         string     `json:"path"`
	Provenance   Provenance `json:"provenance"`
	TemplateHash string     `json:"template_hash"`
}

// Manifest is the on-disk record written to <project>/.flaskforge/manifest.json.
type Manifest struct {
	Version     string           `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Entries     map[string]Entry `json:"entries"`
}

// Manager loads, mutates, and persists a project manifest.
type Manager interface {
	// Load reads the manifest from root, or starts an empty one when absent.
	Load(root string) (*Manifest, error)

	// Manifest returns the in-memory manifest, or nil before Load.
	Manifest() *Manifest

	// Track records a file by project-relative path.
	Track(relPath string, p Provenance, hash string) error

	// GetEntry returns the entry for a project-relative path.
	GetEntry(relPath string) (Entry, bool)

	// Paths returns the tracked paths in sorted order.
	Paths() []string

	// Save writes the manifest back to the project it was loaded from.
	Save() error
}

type manager struct {
	root     string
	manifest *Manifest
}

// NewManager creates an empty, unloaded Manager.
func NewManager() Manager {
	return &manager{}
}

func manifestPath(root string) string {
	return filepath.Join(root, defs.MetaDir, defs.ManifestJSON)
}

func (m *manager) Load(root string) (*Manifest, error) {
	m.root = filepath.Clean(root)

	data, err := os.ReadFile(manifestPath(m.root))
	if os.IsNotExist(err) {
		m.manifest = &Manifest{Entries: make(map[string]Entry)}
		return m.manifest, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var mf Manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if mf.Entries == nil {
		mf.Entries = make(map[string]Entry)
	}
	m.manifest = &mf
	return m.manifest, nil
}

func (m *manager) Manifest() *Manifest {
	return m.manifest
}

func (m *manager) Track(relPath string, p Provenance, hash string) error {
	if m.manifest == nil {
		return fmt.Errorf("manifest not loaded")
	}
	m.manifest.Entries[relPath] = Entry{
		Path:         relPath,
		Provenance:   p,
		TemplateHash: hash,
	}
	return nil
}

func (m *manager) GetEntry(relPath string) (Entry, bool) {
	if m.manifest == nil {
		return Entry{}, false
	}
	e, ok := m.manifest.Entries[relPath]
	return e, ok
}

func (m *manager) Paths() []string {
	if m.manifest == nil {
		return nil
	}
	paths := make([]string, 0, len(m.manifest.Entries))
	for p := range m.manifest.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *manager) Save() error {
	if m.manifest == nil {
		return fmt.Errorf("manifest not loaded")
	}
	if m.manifest.GeneratedAt == "" {
		m.manifest.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}

	path := manifestPath(m.root)
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}

	data, err := json.MarshalIndent(m.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), defs.FilePerm); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// HashBytes returns the hex SHA-256 digest of content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
