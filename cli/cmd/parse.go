package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/log"
)

// Parse parses one source and prints its syntax tree.
type Parse struct {
	Parsing `embed:""`

	Format string `default:"tree" enum:"tree,sexpr,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                                 help:"Indent width; 0 selects compact output." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, stderr := writers(ctx)

	data, err := readSource(ctx, p.Source)
	if err != nil {
		return err
	}

	res, err := lang.Parse(ctx, provider(ctx), sourceName(p.Source), data, p.options()...)
	if err != nil {
		return report(stderr, err)
	}
	defer res.Release()

	log.DebugContext(ctx, "parsed",
		slog.String("path", res.Path),
		slog.Int("nodes", res.Arena().Nodes()),
		slog.Int("bytes", res.Arena().Bytes()),
	)

	switch p.Format {
	case "tree":
		return lang.Print(stdout, res.Program, max(p.Indent, 1))
	case "sexpr":
		return res.Program.Format(ctx, stdout, 0)
	case "json":
		return res.Program.FormatJSON(ctx, stdout, p.Indent)
	case "yaml":
		return res.Program.FormatYAML(ctx, stdout, p.Indent)
	default:
		return ErrFormat.With(slog.String("format", p.Format))
	}
}
