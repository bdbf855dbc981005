package template

import "errors"

// Error definitions for template rendering and deployment.
var (
	// ErrTemplateNotFound is returned when a named template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey is returned when a template references a key
	// absent from the rendering context.
	ErrMissingTemplateKey = errors.New("missing template key")

	// ErrUnexpandedToken is returned when rendered output still contains
	// placeholder tokens.
	ErrUnexpandedToken = errors.New("unexpanded token in rendered output")

	// ErrPathTraversal is returned when a template path would escape the
	// project root.
	ErrPathTraversal = errors.New("template path escapes project root")
)
