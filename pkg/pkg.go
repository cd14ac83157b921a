// Package pkg holds the identity of the doji program and the pieces shared
// by all of its packages: the [Error] type and the per-user directories.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Name identifies the program in help output, metric names, temporary
// files and default directories.
const Name = "doji"

// Description is the one-line summary shown in help output.
const Description = "Front end for the doji scripting language"

//go:embed VERSION
var version string

// Version is the release version, read from the VERSION file at build time.
var Version = strings.TrimSpace(version)
