// Package defs holds file names and permissions shared across the generator.
package defs

import "io/fs"

// Common file and directory names.
const (
	// MetaDir is the hidden directory flaskforge writes inside a
	// generated project to keep its own bookkeeping.
	MetaDir = ".flaskforge"

	// ManifestJSON records every file the generator emitted.
	ManifestJSON = "manifest.json"

	// ConfigYAML is the optional user-defaults file under the config dir.
	ConfigYAML = "config.yaml"

	// ConfigDirName is the per-user configuration directory name.
	ConfigDirName = "flaskforge"
)

// Defaults applied when a prompt is answered with blank input.
const (
	DefaultProjectName = "flask_project"
	DefaultDescription = "A starter Flask application."
	DefaultAuthor      = "Your Name"
)

// File-system permissions for emitted files and directories.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)
