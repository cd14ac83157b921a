package repl

import "github.com/ardnew/doji/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds  = pkg.NewError("history index out of range")
	ErrEditDeclined = pkg.NewError("edit declined")
	ErrHistory      = pkg.NewError("failed to update history")
)
