package cli

import "github.com/ardnew/doji/pkg"

// ErrConfig is returned when a configuration file cannot be decoded.
var ErrConfig = pkg.NewError("invalid configuration file")
