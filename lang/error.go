package lang

import (
	"github.com/ardnew/doji/pkg"
)

// Predefined errors (sentinel values).
//
// Every [*Diagnostic] also satisfies errors.Is(err, ErrParse).
var (
	ErrParse     = pkg.NewError("parse error")
	ErrReadInput = pkg.NewError("failed to read input")
	ErrFormat    = pkg.NewError("failed to format output")
)
