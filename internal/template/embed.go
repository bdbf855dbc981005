package template

import (
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/flaskforge/flaskforge/pkg/models"
)

// templatesFS embeds the scaffold catalog. The all: prefix is required
// because the catalog contains dotfiles (.flaskenv, .gitignore, ...).
//
//go:embed all:templates
var templatesFS embed.FS

// CommonTemplates returns the workflow-independent part of the catalog.
func CommonTemplates() (fs.FS, error) {
	return fs.Sub(templatesFS, "templates/common")
}

// WorkflowTemplates returns the catalog subtree specific to the given
// dependency-management workflow.
func WorkflowTemplates(w models.Workflow) (fs.FS, error) {
	switch w {
	case models.WorkflowPoetry:
		return fs.Sub(templatesFS, "templates/poetry")
	default:
		return fs.Sub(templatesFS, "templates/requirements")
	}
}

// CatalogPaths lists every file a deploy for the given workflow will
// produce, relative to the project root with .tmpl suffixes stripped,
// sorted for deterministic iteration.
func CatalogPaths(w models.Workflow) ([]string, error) {
	common, err := CommonTemplates()
	if err != nil {
		return nil, err
	}
	wf, err := WorkflowTemplates(w)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, fsys := range []fs.FS{common, wf} {
		err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			paths = append(paths, strings.TrimSuffix(path, tmplSuffix))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}
