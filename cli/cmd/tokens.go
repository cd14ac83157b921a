package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/log"
)

// Tokens prints the token stream of one source.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the tokens command. Each token is printed on its own line as
// "line:col kind span text". Tokens scanned before a lexical error are
// printed before the diagnostic.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, stderr := writers(ctx)

	data, err := readSource(ctx, t.Source)
	if err != nil {
		return err
	}

	toks, err := lang.Tokens(ctx, sourceName(t.Source), data, lang.WithLogger(log.Default()))

	for _, tok := range toks {
		if tok.Kind == lang.TokenEOF {
			fmt.Fprintf(stdout, "%d:%d %s %s\n",
				tok.Location.Line, tok.Location.Column, tok.Kind, tok.Span)

			continue
		}

		fmt.Fprintf(stdout, "%d:%d %s %s %s\n",
			tok.Location.Line, tok.Location.Column, tok.Kind, tok.Span, tok.Text(data))
	}

	log.DebugContext(ctx, "scanned",
		slog.String("path", sourceName(t.Source)),
		slog.Int("tokens", len(toks)),
	)

	if err != nil {
		return report(stderr, err)
	}

	return nil
}
