package cmd

import (
	"github.com/ardnew/doji/pkg"
)

var (
	// ErrReported means diagnostics were already written for the user.
	// The process should exit with a failure status without further output.
	ErrReported = pkg.NewError("source has errors")

	ErrOpenSource = pkg.NewError("failed to read source")
	ErrWatch      = pkg.NewError("failed to watch sources")
	ErrMetrics    = pkg.NewError("failed to write metrics")
	ErrFormat     = pkg.NewError("unknown output format")
)
