package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/lang"
	"github.com/ardnew/doji/log"
)

// Check parses many sources concurrently and reports their diagnostics.
type Check struct {
	Parsing `embed:""`

	Jobs     int           `default:"0"     help:"Maximum concurrent parses; 0 uses GOMAXPROCS." short:"j"`
	Watch    bool          `                help:"Re-check sources when they change."             short:"w"`
	Debounce time.Duration `default:"100ms" help:"Delay before re-checking after a change."`
	Metrics  bool          `                help:"Print allocator metrics in Prometheus text format after each run."`

	Sources []string `arg:"" help:"Source input files or '-' for stdin." name:"sources"`
}

// checker runs one batch of parses. Each source gets its own provider, so
// --mem-limit applies per file.
type checker struct {
	opts    []lang.Option
	jobs    int
	metrics *alloc.Metrics
	stderr  io.Writer
}

// Run executes the check command. Each diagnostic is printed as
// "path:line:col: message". The command fails with [ErrReported] if any
// source failed, unless it is watching.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, stderr := writers(ctx)

	reg := prometheus.NewRegistry()

	chk := checker{
		opts:   c.options(),
		jobs:   c.Jobs,
		stderr: stderr,
	}

	if c.Metrics {
		chk.metrics = alloc.NewMetrics(reg)
	}

	sources := uniqueSources(c.Sources)

	failed := chk.run(ctx, sources)

	if c.Metrics {
		if err := writeMetrics(stdout, reg); err != nil {
			return err
		}
	}

	if c.Watch {
		return c.watch(ctx, sources, chk, stdout, reg)
	}

	if failed > 0 {
		return ErrReported
	}

	return nil
}

// run parses sources in parallel and prints the failures in input order.
// It returns the number of sources that failed.
func (chk checker) run(ctx context.Context, sources []string) (failed int) {
	outcome := make([]error, len(sources))

	g, gctx := errgroup.WithContext(ctx)

	jobs := chk.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g.SetLimit(jobs)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcome[i] = err

				return nil
			}

			outcome[i] = chk.one(gctx, src)

			return nil
		})
	}

	_ = g.Wait()

	for i, err := range outcome {
		if err == nil {
			continue
		}

		failed++

		var d *lang.Diagnostic
		if errors.As(err, &d) {
			fmt.Fprintln(chk.stderr, d)
		} else {
			fmt.Fprintf(chk.stderr, "%s: %v\n", sourceName(sources[i]), err)
		}
	}

	log.InfoContext(ctx, "checked",
		slog.Int("sources", len(sources)),
		slog.Int("failed", failed),
		slog.Int("jobs", jobs),
	)

	return failed
}

// one parses a single source and discards the tree.
func (chk checker) one(ctx context.Context, src string) error {
	data, err := readSource(ctx, src)
	if err != nil {
		return err
	}

	p := provider(ctx)
	if chk.metrics != nil {
		p = chk.metrics.Instrument(p)
	}

	res, err := lang.Parse(ctx, p, sourceName(src), data, chk.opts...)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parsed",
		slog.String("path", res.Path),
		slog.Int("nodes", res.Arena().Nodes()),
		slog.Int("bytes", res.Arena().Bytes()),
	)

	res.Release()

	return nil
}

// watch re-checks sources as they change until ctx is done. Stdin cannot
// be watched and is skipped. Events arriving within the debounce window
// are checked as one batch.
func (c *Check) watch(
	ctx context.Context,
	sources []string,
	chk checker,
	stdout io.Writer,
	reg prometheus.Gatherer,
) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	// Watch parent directories: editors often replace a file by renaming
	// over it, which drops a watch placed on the file itself.
	watched := make(map[string]string, len(sources))
	dirs := make(map[string]struct{})

	for _, src := range sources {
		if src == stdinSource {
			continue
		}

		abs, err := filepath.Abs(src)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", src))
		}

		watched[abs] = src

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}

		if err := w.Add(dir); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", dir))
		}

		dirs[dir] = struct{}{}
	}

	log.InfoContext(ctx, "watching",
		slog.Int("sources", len(watched)),
		slog.Int("dirs", len(dirs)),
		slog.Duration("debounce", c.Debounce),
	)

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op == fsnotify.Chmod {
				continue
			}

			src, ok := watched[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}

			log.DebugContext(ctx, "source changed",
				slog.String("path", src),
				slog.String("op", ev.Op.String()),
			)

			pending[src] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(c.Debounce)
			} else {
				timer.Reset(c.Debounce)
			}

			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-fire:
			fire = nil

			batch := make([]string, 0, len(pending))
			for _, src := range sources {
				if _, ok := pending[src]; ok {
					batch = append(batch, src)
				}
			}

			clear(pending)

			failed := chk.run(ctx, batch)
			fmt.Fprintf(chk.stderr, "checked %d source(s): %d failed\n", len(batch), failed)

			if c.Metrics {
				if err := writeMetrics(stdout, reg); err != nil {
					return err
				}
			}
		}
	}
}

// writeMetrics writes every metric family gathered from reg in the
// Prometheus text exposition format.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return ErrMetrics.Wrap(err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return ErrMetrics.Wrap(err)
		}
	}

	return nil
}
