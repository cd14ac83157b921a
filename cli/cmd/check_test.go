package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/lang"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.doji", "{a: [1, 2], b: f(x)}")
	bad := writeFile(t, dir, "bad.doji", "1 +\n")
	lexical := writeFile(t, dir, "lexical.doji", "x # y")
	missing := filepath.Join(dir, "missing.doji")

	tests := []struct {
		name       string
		sources    []string
		jobs       int
		wantErr    error
		wantStderr string
	}{
		{
			name:    "all good",
			sources: []string{good},
		},
		{
			name:    "duplicates checked once",
			sources: []string{good, good},
		},
		{
			name:       "failures in input order",
			sources:    []string{lexical, good, bad},
			wantErr:    ErrReported,
			wantStderr: lexical + ":1:3: unexpected char '#', expected 'EOF'\n" + bad + ":2:1: unexpected EOF\n",
		},
		{
			name:       "serial",
			sources:    []string{bad, lexical},
			jobs:       1,
			wantErr:    ErrReported,
			wantStderr: bad + ":2:1: unexpected EOF\n" + lexical + ":1:3: unexpected char '#', expected 'EOF'\n",
		},
		{
			name:       "missing file",
			sources:    []string{missing},
			wantErr:    ErrReported,
			wantStderr: missing + ": " + ErrOpenSource.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout, stderr := testContext(t)

			c := &Check{Jobs: tt.jobs, Sources: tt.sources}

			err := c.Run(ctx)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Run: %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run = %v, want %v", err, tt.wantErr)
			}

			if !strings.HasPrefix(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want prefix %q", stderr.String(), tt.wantStderr)
			}

			if tt.wantStderr == "" && stderr.String() != "" {
				t.Errorf("stderr = %q, want empty", stderr.String())
			}

			if stdout.String() != "" {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
		})
	}
}

func TestCheck_MemLimitPerFile(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.doji", "1")
	large := writeFile(t, dir, "large.doji", "["+strings.Repeat("1, ", 100)+"]")

	// Size the limit to exactly what the small source needs.
	budget := alloc.Limit(1 << 30)

	res, err := lang.Parse(t.Context(), budget, small, []byte("1"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	res.Release()

	ctx, _, stderr := testContext(t)
	ctx = WithMemLimit(ctx, budget.Peak())

	c := &Check{Sources: []string{small, large, small}}
	if err := c.Run(ctx); !errors.Is(err, ErrReported) {
		t.Fatalf("Run = %v, want ErrReported", err)
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("stderr = %q, want one failure", stderr.String())
	}

	if !strings.HasPrefix(lines[0], large+": out of memory") {
		t.Errorf("failure = %q, want out of memory for %s", lines[0], large)
	}
}

func TestCheck_Metrics(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.doji", "a.b(c)")
	b := writeFile(t, dir, "b.doji", "[1, 2, 3]")

	ctx, stdout, _ := testContext(t)

	c := &Check{Metrics: true, Sources: []string{a, b}}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := stdout.String()

	for _, want := range []string{
		"# TYPE doji_alloc_requests_total counter",
		`doji_alloc_requests_total{op="alloc"}`,
		`doji_alloc_requests_total{op="free"}`,
		"# TYPE doji_alloc_bytes_in_use gauge",
		"doji_alloc_bytes_in_use 0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "doji_alloc_failures_total{") {
		t.Errorf("metrics report failures without any:\n%s", out)
	}
}

func TestCheck_Watch(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "a.doji", "1 + 2")
	other := writeFile(t, dir, "other.txt", "")

	ctx, _, stderr := testContext(t)
	ctx, cancel := context.WithCancel(ctx)

	done := make(chan error, 1)

	go func() {
		c := &Check{Watch: true, Debounce: 10 * time.Millisecond, Sources: []string{src}}
		done <- c.Run(ctx)
	}()

	// wait polls stderr until it contains want.
	wait := func(want string) {
		t.Helper()

		deadline := time.Now().Add(5 * time.Second)
		for !strings.Contains(stderr.String(), want) {
			if time.Now().After(deadline) {
				cancel()
				t.Fatalf("timed out waiting for %q; stderr = %q", want, stderr.String())
			}

			time.Sleep(10 * time.Millisecond)
		}
	}

	// Give the watcher time to start, then keep touching the source until
	// the first re-check shows up.
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stderr.String(), "checked 1 source(s): 0 failed") {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("no re-check; stderr = %q", stderr.String())
		}

		if err := os.WriteFile(other, []byte("ignored"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(src, []byte("1 + 2"), 0o600); err != nil {
			t.Fatal(err)
		}

		time.Sleep(50 * time.Millisecond)
	}

	if err := os.WriteFile(src, []byte("1 +"), 0o600); err != nil {
		t.Fatal(err)
	}

	wait(src + ":1:4: unexpected EOF\n")
	wait("checked 1 source(s): 1 failed")

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
