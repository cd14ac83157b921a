package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseReader_Cache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	first, err := ParseReader(ctx, "a.doji", strings.NewReader("1 + 2"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	second, err := ParseReader(ctx, "a.doji", strings.NewReader("1 + 2"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if first != second {
		t.Error("identical input was parsed twice")
	}

	other, err := ParseReader(ctx, "b.doji", strings.NewReader("1 + 2"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if other == first {
		t.Error("different paths share a cached result")
	}

	if other.Path != "b.doji" || string(other.Source) != "1 + 2" {
		t.Errorf("result = %q %q", other.Path, other.Source)
	}

	ClearCache()

	third, err := ParseReader(ctx, "a.doji", strings.NewReader("1 + 2"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if third == first {
		t.Error("ClearCache kept a result")
	}
}

func TestParseReader_CachesDiagnostics(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	_, err1 := ParseReader(ctx, "bad.doji", strings.NewReader("(1"))
	_, err2 := ParseReader(ctx, "bad.doji", strings.NewReader("(1"))

	var d1, d2 *Diagnostic
	if !errors.As(err1, &d1) || !errors.As(err2, &d2) {
		t.Fatalf("errors = %v, %v", err1, err2)
	}

	if d1 != d2 {
		t.Error("diagnostic was not cached")
	}
}

func TestParseReader_OptionsInKey(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	if _, err := ParseReader(ctx, "x", strings.NewReader("((1))")); err != nil {
		t.Fatalf("default depth: %v", err)
	}

	if _, err := ParseReader(ctx, "x", strings.NewReader("((1))"), WithMaxDepth(2)); err == nil {
		t.Error("cached result ignored WithMaxDepth")
	}
}

func TestParseReader_ReadError(t *testing.T) {
	boom := errors.New("boom")

	_, err := ParseReader(context.Background(), "broken", iotest.ErrReader(boom))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("errors.Is(err, ErrReadInput) = false for %v", err)
	}

	if !errors.Is(err, boom) {
		t.Errorf("read error not wrapped: %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	cfg := makeConfig()

	k1, h1 := cacheKey("p", []byte("src"), cfg)
	k2, h2 := cacheKey("p", []byte("src"), cfg)
	k3, h3 := cacheKey("q", []byte("src"), cfg)

	if k1 != k2 || h1 != h2 {
		t.Error("cache key is not deterministic")
	}

	if k1 == k3 {
		t.Error("path does not affect the key")
	}

	if h1 != h3 {
		t.Error("source hash depends on path")
	}
}
