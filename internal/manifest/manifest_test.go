package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/flaskforge/flaskforge/internal/defs"
)

func TestManagerLoadSave(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		root := t.TempDir()
		mgr := NewManager()
		if _, err := mgr.Load(root); err != nil {
			t.Fatalf("Load error: %v", err)
		}

		if err := mgr.Track("README.md", TemplateManaged, HashBytes([]byte("hello"))); err != nil {
			t.Fatalf("Track error: %v", err)
		}
		if err := mgr.Save(); err != nil {
			t.Fatalf("Save error: %v", err)
		}

		// Reload and verify the entry survived.
		mgr2 := NewManager()
		mf, err := mgr2.Load(root)
		if err != nil {
			t.Fatalf("reload error: %v", err)
		}
		entry, ok := mgr2.GetEntry("README.md")
		if !ok {
			t.Fatal("expected entry for README.md after reload")
		}
		if entry.Provenance != TemplateManaged {
			t.Errorf("Provenance = %q, want %q", entry.Provenance, TemplateManaged)
		}
		if mf.GeneratedAt == "" {
			t.Error("GeneratedAt should be set by Save")
		}
	})

	t.Run("missing_manifest_starts_empty", func(t *testing.T) {
		mgr := NewManager()
		mf, err := mgr.Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if len(mf.Entries) != 0 {
			t.Errorf("expected empty entries, got %d", len(mf.Entries))
		}
	})

	t.Run("save_writes_valid_json", func(t *testing.T) {
		root := t.TempDir()
		mgr := NewManager()
		if _, err := mgr.Load(root); err != nil {
			t.Fatalf("Load error: %v", err)
		}
		_ = mgr.Track("app/__init__.py", TemplateManaged, HashBytes([]byte("x")))
		if err := mgr.Save(); err != nil {
			t.Fatalf("Save error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(root, defs.MetaDir, defs.ManifestJSON))
		if err != nil {
			t.Fatalf("read manifest file: %v", err)
		}
		if !json.Valid(data) {
			t.Error("manifest file is not valid JSON")
		}
	})

	t.Run("track_before_load_fails", func(t *testing.T) {
		mgr := NewManager()
		if err := mgr.Track("x", TemplateManaged, "h"); err == nil {
			t.Error("Track before Load should fail")
		}
	})
}

func TestPathsSorted(t *testing.T) {
	mgr := NewManager()
	if _, err := mgr.Load(t.TempDir()); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	for _, p := range []string{"b.py", "a.py", "c/d.py"} {
		_ = mgr.Track(p, TemplateManaged, "h")
	}
	paths := mgr.Paths()
	want := []string{"a.py", "b.py", "c/d.py"}
	if len(paths) != len(want) {
		t.Fatalf("Paths() len = %d, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("content"))
	b := HashBytes([]byte("content"))
	c := HashBytes([]byte("other"))
	if a != b {
		t.Error("identical content should hash identically")
	}
	if a == c {
		t.Error("different content should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
