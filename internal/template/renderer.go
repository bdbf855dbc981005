package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// title turns "blog_app" into "Blog App" for display strings.
	"title": func(s string) string {
		return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
	},
	// snake turns spaces and dashes into underscores for Python identifiers.
	"snake": func(s string) string {
		return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	},
}

// leftoverTokenPattern detects placeholder tokens that survived rendering:
// ${VAR}, {{ ... }}, and bare $UPPERCASE variables. The check only runs on
// .tmpl output; the Jinja templates in the catalog are copied verbatim and
// never pass through here.
var leftoverTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\{\{[^}]*\}\}|\$[A-Z_][A-Z0-9_]*`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the backing FS and executes it
	// with the given data. Returns ErrMissingTemplateKey when the context
	// lacks a referenced key and ErrUnexpandedToken when placeholder
	// tokens remain in the output.
	Render(templateName string, data any) ([]byte, error)
}

type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()
	if loc := leftoverTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q in %s", ErrUnexpandedToken, string(loc), templateName)
	}

	return result, nil
}
