package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/doji/alloc"
)

// globalCache stores parse outcomes keyed by a hash of the source, its
// path, and the options that affect the tree.
var globalCache sync.Map

// state is the outcome of parsing one source. It is filled exactly once.
type state struct {
	once   sync.Once
	result *Result
	err    error
}

// cacheKey returns the cache key for src parsed under path with cfg.
func cacheKey(path string, src []byte, cfg config) (key string, srcHash uint64) {
	srcHash = xxh3.Hash(src)
	optsHash := xxh3.HashString(path + "\x00" + strconv.Itoa(cfg.maxDepth))

	return strconv.FormatUint(srcHash^optsHash, 36), srcHash
}

// ParseReader reads all of r and parses it with an unbounded provider.
//
// Outcomes are cached by content: parsing identical input under the same
// path and options again returns the same *Result (or the same
// diagnostic) without re-parsing. Cached results are shared and must not
// be released.
func ParseReader(
	ctx context.Context,
	path string,
	r io.Reader,
	opts ...Option,
) (*Result, error) {
	// Wrap reader with async read-ahead so input is prefetched while the
	// previous chunk is consumed.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(
		ctx,
		"read input",
		slog.String("path", path),
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseCached(ctx, path, data, cfg, opts...)
}

func parseCached(
	ctx context.Context,
	path string,
	src []byte,
	cfg config,
	opts ...Option,
) (*Result, error) {
	key, srcHash := cacheKey(path, src, cfg)

	value, hit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return nil, ErrParse.With(slog.String("issue", "invalid cache entry"))
	}

	cfg.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(srcHash, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.result, entry.err = Parse(ctx, alloc.Heap(), path, src, opts...)
	})

	return entry.result, entry.err
}

// ClearCache removes all cached parse outcomes.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
