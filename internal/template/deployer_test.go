package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flaskforge/flaskforge/internal/manifest"
)

func testCatalog() fstest.MapFS {
	return fstest.MapFS{
		"README.md.tmpl": &fstest.MapFile{
			Data: []byte("# {{ .ProjectName }}\n\n{{ .Description }}\n"),
		},
		"app/__init__.py": &fstest.MapFile{
			Data: []byte("from flask import Flask\n"),
		},
		"app/templates/base.html": &fstest.MapFile{
			Data: []byte("<title>{% block title %}Flask Starter{% endblock %}</title>\n"),
		},
	}
}

func loadedManifest(t *testing.T, root string) manifest.Manager {
	t.Helper()
	mgr := manifest.NewManager()
	if _, err := mgr.Load(root); err != nil {
		t.Fatalf("manifest load: %v", err)
	}
	return mgr
}

func TestDeploy(t *testing.T) {
	data := NewContext(
		WithProject("blogapp", ""),
		WithDescription("My writing corner."),
	)

	t.Run("renders_tmpl_and_copies_raw", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)
		d := NewDeployer(testCatalog())

		if err := d.Deploy(context.Background(), root, mgr, data); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		readme, err := os.ReadFile(filepath.Join(root, "README.md"))
		if err != nil {
			t.Fatalf("README.md not written: %v", err)
		}
		if !strings.Contains(string(readme), "# blogapp") || !strings.Contains(string(readme), "My writing corner.") {
			t.Errorf("README.md not rendered: %q", readme)
		}
		// .tmpl suffix must not leak into the project tree.
		if _, err := os.Stat(filepath.Join(root, "README.md.tmpl")); err == nil {
			t.Error("README.md.tmpl should not exist in project")
		}

		// Jinja delimiters in raw files survive untouched.
		base, err := os.ReadFile(filepath.Join(root, "app", "templates", "base.html"))
		if err != nil {
			t.Fatalf("base.html not written: %v", err)
		}
		if !strings.Contains(string(base), "{% block title %}") {
			t.Errorf("Jinja template altered: %q", base)
		}
	})

	t.Run("tracks_files_in_manifest", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)
		d := NewDeployer(testCatalog())

		if err := d.Deploy(context.Background(), root, mgr, data); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		entry, ok := mgr.GetEntry("README.md")
		if !ok {
			t.Fatal("README.md not tracked")
		}
		if entry.Provenance != manifest.TemplateManaged {
			t.Errorf("Provenance = %q", entry.Provenance)
		}
		if entry.TemplateHash == "" {
			t.Error("TemplateHash empty")
		}
	})

	t.Run("never_overwrites_existing_files", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)
		own := []byte("my own readme\n")
		if err := os.WriteFile(filepath.Join(root, "README.md"), own, 0o644); err != nil {
			t.Fatalf("seed file: %v", err)
		}

		d := NewDeployer(testCatalog())
		if err := d.Deploy(context.Background(), root, mgr, data); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}

		got, _ := os.ReadFile(filepath.Join(root, "README.md"))
		if string(got) != string(own) {
			t.Errorf("existing file overwritten: %q", got)
		}
		entry, ok := mgr.GetEntry("README.md")
		if !ok || entry.Provenance != manifest.UserCreated {
			t.Errorf("existing file not tracked as user-created: %+v", entry)
		}
	})

	t.Run("observer_sees_every_file", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)

		var seen []string
		d := NewDeployer(testCatalog(), WithFileObserver(func(relPath string) {
			seen = append(seen, relPath)
		}))
		if err := d.Deploy(context.Background(), root, mgr, data); err != nil {
			t.Fatalf("Deploy error: %v", err)
		}
		if len(seen) != 3 {
			t.Errorf("observer calls = %d, want 3: %v", len(seen), seen)
		}
	})

	t.Run("cancelled_context_stops_deploy", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := NewDeployer(testCatalog())
		if err := d.Deploy(ctx, root, mgr, data); !errors.Is(err, context.Canceled) {
			t.Errorf("want context.Canceled, got %v", err)
		}
	})

	t.Run("render_failure_aborts", func(t *testing.T) {
		root := t.TempDir()
		mgr := loadedManifest(t, root)
		catalog := fstest.MapFS{
			"bad.txt.tmpl": &fstest.MapFile{Data: []byte("{{ .NoSuchField }}\n")},
		}
		d := NewDeployer(catalog)
		err := d.Deploy(context.Background(), root, mgr, data)
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("want ErrMissingTemplateKey, got %v", err)
		}
	})
}

func TestValidateDeployPath(t *testing.T) {
	root := "/home/u/blogapp"

	t.Run("accepts_nested_paths", func(t *testing.T) {
		got, err := validateDeployPath(root, "app/templates/base.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join(root, "app", "templates", "base.html")
		if got != want {
			t.Errorf("dest = %q, want %q", got, want)
		}
	})

	t.Run("rejects_escape", func(t *testing.T) {
		if _, err := validateDeployPath(root, "../evil.sh"); !errors.Is(err, ErrPathTraversal) {
			t.Errorf("want ErrPathTraversal, got %v", err)
		}
		if _, err := validateDeployPath(root, "app/../../evil.sh"); !errors.Is(err, ErrPathTraversal) {
			t.Errorf("want ErrPathTraversal, got %v", err)
		}
	})
}
