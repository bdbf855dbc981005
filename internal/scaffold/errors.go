package scaffold

import "errors"

var (
	// ErrTargetNotEmpty is returned when the project directory already
	// exists and contains files, and the caller did not force the run.
	ErrTargetNotEmpty = errors.New("target directory exists and is not empty")

	// ErrInvalidWorkflow is returned for an unrecognized workflow value.
	ErrInvalidWorkflow = errors.New("invalid workflow")

	// ErrInvalidProjectName is returned when the project name cannot be
	// used as a directory name.
	ErrInvalidProjectName = errors.New("invalid project name")
)
