package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/doji/alloc"
)

// Result is a parsed program together with the arena that owns it.
type Result struct {
	Path    string
	Source  []byte
	Program *Program

	arena *Arena
}

// Arena returns the arena owning the program's nodes.
func (r *Result) Arena() *Arena { return r.arena }

// Release returns the program's memory to its provider. The program must
// not be used afterwards.
func (r *Result) Release() {
	r.arena.Release()
	r.Program = nil
}

// Parse parses src as a single top-level operation charged against p.
//
// On success it returns the program. On malformed input it returns the
// first [*Diagnostic] as the error. If p refuses a request it returns
// [alloc.ErrOutOfMemory]. In both failure cases the partial tree is
// discarded with its arena.
func Parse(
	ctx context.Context,
	p alloc.Provider,
	path string,
	src []byte,
	opts ...Option,
) (*Result, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(
		ctx,
		"parse start",
		slog.String("path", path),
		slog.Int("source_bytes", len(src)),
		slog.Int("max_depth", cfg.maxDepth),
	)

	a := alloc.New(p, alloc.WithLogger(cfg.logger), alloc.WithContext(ctx))
	prs := NewParser(a, path, src, opts...)

	var prog *Program

	err := alloc.Guard(func() error {
		prog = prs.Parse()
		if prog == nil {
			return prs.Diagnostic()
		}

		return nil
	})
	if err != nil {
		prs.Arena().Release()

		cfg.logger.TraceContext(ctx, "parse failed",
			slog.String("path", path),
			slog.Any("error", err),
		)

		return nil, err
	}

	cfg.logger.TraceContext(
		ctx,
		"parse complete",
		slog.String("path", path),
		slog.Int("nodes", prs.Arena().Nodes()),
		slog.Int("arena_bytes", prs.Arena().Bytes()),
	)

	return &Result{
		Path:    path,
		Source:  src,
		Program: prog,
		arena:   prs.Arena(),
	}, nil
}

// ParseString parses src with an unbounded provider.
func ParseString(
	ctx context.Context,
	path string,
	src string,
	opts ...Option,
) (*Result, error) {
	return Parse(ctx, alloc.Heap(), path, []byte(src), opts...)
}

// Tokens scans all of src and returns its tokens, ending with EOF.
// On a lexical error it returns the tokens scanned so far and the
// [*Diagnostic].
func Tokens(ctx context.Context, path string, src []byte, opts ...Option) ([]Token, error) {
	cfg := makeConfig(opts...)
	a := alloc.New(alloc.Heap(), alloc.WithLogger(cfg.logger), alloc.WithContext(ctx))
	s := NewScanner(a, path, src)

	var toks []Token

	for tok := range s.All() {
		if s.Diagnostic() != nil {
			break
		}

		toks = append(toks, tok)
	}

	cfg.logger.TraceContext(ctx, "scan complete",
		slog.String("path", path),
		slog.Int("tokens", len(toks)),
	)

	if d := s.Diagnostic(); d != nil {
		return toks, d
	}

	return toks, nil
}
