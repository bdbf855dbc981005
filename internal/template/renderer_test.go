package template

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flaskforge/flaskforge/pkg/models"
)

func TestRender(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md.tmpl": &fstest.MapFile{
			Data: []byte("# {{ .ProjectName }}\n\n{{ .Description }}\n"),
		},
		"greeting.tmpl": &fstest.MapFile{
			Data: []byte("Welcome to {{ title .ProjectName }}!\n"),
		},
		"leftover.tmpl": &fstest.MapFile{
			Data: []byte("export ROOT=${PROJECT_ROOT}\n"),
		},
		"broken.tmpl": &fstest.MapFile{
			Data: []byte("{{ .ProjectName\n"),
		},
	}
	r := NewRenderer(fsys)

	t.Run("substitutes_context_fields", func(t *testing.T) {
		data := NewContext(
			WithProject("blogapp", "/home/u/blogapp"),
			WithDescription("My writing corner."),
		)
		got, err := r.Render("README.md.tmpl", data)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		want := "# blogapp\n\nMy writing corner.\n"
		if string(got) != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	})

	t.Run("title_func", func(t *testing.T) {
		got, err := r.Render("greeting.tmpl", NewContext(WithProject("blog_app", "")))
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(got), "Blog App") {
			t.Errorf("title func not applied: %q", got)
		}
	})

	t.Run("missing_key_errors", func(t *testing.T) {
		_, err := r.Render("README.md.tmpl", struct{ ProjectName string }{"x"})
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("want ErrMissingTemplateKey, got %v", err)
		}
	})

	t.Run("leftover_token_errors", func(t *testing.T) {
		_, err := r.Render("leftover.tmpl", NewContext())
		if !errors.Is(err, ErrUnexpandedToken) {
			t.Errorf("want ErrUnexpandedToken, got %v", err)
		}
	})

	t.Run("parse_error_is_reported", func(t *testing.T) {
		if _, err := r.Render("broken.tmpl", NewContext()); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("unknown_template", func(t *testing.T) {
		_, err := r.Render("nope.tmpl", NewContext())
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("want ErrTemplateNotFound, got %v", err)
		}
	})
}

func TestRenderCatalog(t *testing.T) {
	t.Run("readme_display_title", func(t *testing.T) {
		fsys, err := CommonTemplates()
		if err != nil {
			t.Fatalf("CommonTemplates error: %v", err)
		}
		got, err := NewRenderer(fsys).Render("README.md.tmpl", NewContext(
			WithProject("blog_app", "/home/u/blog_app"),
			WithDescription("My writing corner."),
		))
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(got), "# blog_app") {
			t.Errorf("heading must keep the raw project name:\n%s", got)
		}
		if !strings.Contains(string(got), "Blog App is a Flask web application") {
			t.Errorf("display title not rendered:\n%s", got)
		}
	})

	t.Run("pyproject_snake_name", func(t *testing.T) {
		fsys, err := WorkflowTemplates(models.WorkflowPoetry)
		if err != nil {
			t.Fatalf("WorkflowTemplates error: %v", err)
		}
		got, err := NewRenderer(fsys).Render("pyproject.toml.tmpl", NewContext(
			WithProject("shop api", "/home/u/shop api"),
			WithAuthor("Jane Doe", "jane@example.com"),
		))
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if !strings.Contains(string(got), `name = "shop_api"`) {
			t.Errorf("package name not snake-cased:\n%s", got)
		}
	})
}
