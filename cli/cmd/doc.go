// Package cmd implements the doji subcommands: parse, tokens, check, and
// the interactive repl in the repl subpackage.
//
// Commands read their input with read-ahead, parse it against a fresh
// allocation provider per source (bounded by --mem-limit), and write to
// the output streams of the kong context stored with [WithContext].
package cmd

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/doji/lang"
)

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
const CacheIdentifier = "cache"

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	return kong.Vars{
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
	}
}
