package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/log"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// writers returns the output streams of the kong context stored in ctx, or
// the process streams if there is none.
func writers(ctx context.Context) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr

	if ktx := kongContextFrom(ctx); ktx != nil {
		if ktx.Stdout != nil {
			stdout = ktx.Stdout
		}

		if ktx.Stderr != nil {
			stderr = ktx.Stderr
		}
	}

	return stdout, stderr
}

type memLimitKey struct{}

// WithMemLimit returns a new context.Context in which every parse is
// limited to limit bytes. A non-positive limit means unlimited.
func WithMemLimit(ctx context.Context, limit int) context.Context {
	return context.WithValue(ctx, memLimitKey{}, limit)
}

// provider returns a fresh provider for one parse, honoring the limit
// stored by [WithMemLimit].
func provider(ctx context.Context) alloc.Provider {
	if limit, _ := ctx.Value(memLimitKey{}).(int); limit > 0 {
		return alloc.Limit(limit)
	}

	return alloc.Heap()
}

// Parsing holds the flags shared by every command that parses source.
type Parsing struct {
	MaxDepth int `default:"${maxDepth}" help:"Maximum expression nesting depth." placeholder:"N"`
}

func (p Parsing) options() []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(p.MaxDepth),
		lang.WithLogger(log.Default()),
	}
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName labels diagnostics for source read from stdin.
const stdinName = "<stdin>"

// sourceName returns the path used to label diagnostics for src.
func sourceName(src string) string {
	if src == stdinSource {
		return stdinName
	}

	return src
}

// readSource reads all of src, or stdin if src is "-".
func readSource(ctx context.Context, src string) ([]byte, error) {
	var r io.Reader = os.Stdin

	if src != stdinSource {
		f, err := os.Open(src)
		if err != nil {
			return nil, ErrOpenSource.Wrap(err).With(slog.String("path", src))
		}
		defer f.Close()

		r = f
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).With(slog.String("path", sourceName(src)))
	}

	log.TraceContext(ctx, "source read",
		slog.String("path", sourceName(src)),
		slog.Int("bytes", len(data)),
	)

	return data, nil
}

// report writes a diagnostic to w as "path:line:col: message" and returns
// [ErrReported]. Any other error is returned unchanged.
func report(w io.Writer, err error) error {
	var d *lang.Diagnostic
	if !errors.As(err, &d) {
		return err
	}

	fmt.Fprintln(w, d)

	return ErrReported
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources returns sources with duplicates removed, preserving the
// order of first appearance.
//
// Two paths are duplicates if they resolve, through symlinks, to the same
// device and inode. Every "-" collapses into one stdin source placed last,
// as does any path naming the file already open as stdin. Paths that cannot
// be resolved are kept so that reading them reports the error.
func uniqueSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, stdinOK := makeFileKey(stdinInfo)

	hasStdin := false

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		key, ok := resolveFileKey(src)
		if !ok {
			out = append(out, src)

			continue
		}

		if stdinOK && key == stdinKey {
			hasStdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, src)
	}

	if hasStdin {
		out = append(out, stdinSource)
	}

	return out
}

// resolveFileKey returns the identity of the regular file at path after
// resolving symlinks.
func resolveFileKey(path string) (fileKey, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
