package cmd

import (
	"context"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/cli/cmd/repl"
	"github.com/ardnew/doji/log"
)

// Repl starts an interactive session that parses each submitted line.
type Repl struct {
	Parsing `embed:""`

	Format  string `default:"sexpr"                        enum:"tree,sexpr,json,yaml" help:"Initial output format (${enum})." short:"f"`
	History string `default:"${cache}/history.utf8"        help:"History file; empty disables persistence."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, repl.Config{
		HistoryPath: r.History,
		Format:      r.Format,
		Provider:    func() alloc.Provider { return provider(ctx) },
		Options:     r.options(),
		Logger:      log.Default(),
	})
}
