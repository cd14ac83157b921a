package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardnew/doji/alloc"
)

var benchSource = strings.Repeat("a.b(c, [1, 2.5, nil], {k: v})[0] * (x + -y) || ", 64) + "z"

// BenchmarkScanner measures raw tokenization throughput.
func BenchmarkScanner(b *testing.B) {
	src := []byte(benchSource)
	b.SetBytes(int64(len(src)))

	for b.Loop() {
		s := NewScanner(nil, "bench", src)
		for range s.All() {
		}
	}
}

// BenchmarkParse measures parsing with an unbounded provider.
func BenchmarkParse(b *testing.B) {
	ctx := context.Background()
	src := []byte(benchSource)
	b.SetBytes(int64(len(src)))

	for b.Loop() {
		res, err := Parse(ctx, alloc.Heap(), "bench", src)
		if err != nil {
			b.Fatal(err)
		}

		res.Release()
	}
}

// BenchmarkParse_Budget measures the overhead of a bounded provider.
func BenchmarkParse_Budget(b *testing.B) {
	ctx := context.Background()
	src := []byte(benchSource)
	budget := alloc.Limit(1 << 24)
	b.SetBytes(int64(len(src)))

	for b.Loop() {
		res, err := Parse(ctx, budget, "bench", src)
		if err != nil {
			b.Fatal(err)
		}

		res.Release()
	}
}

// BenchmarkParseReader_Cached measures repeated parsing of identical input.
func BenchmarkParseReader_Cached(b *testing.B) {
	ClearCache()
	b.Cleanup(ClearCache)

	ctx := context.Background()
	src := []byte(benchSource)

	for b.Loop() {
		if _, err := ParseReader(ctx, "bench", bytes.NewReader(src)); err != nil {
			b.Fatal(err)
		}
	}
}
