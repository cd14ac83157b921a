//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/doji/log"
	"github.com/ardnew/doji/pkg"
	"github.com/ardnew/doji/profile"
)

type pprofConfig struct {
	Mode    string `default:""            enum:",${pprofModeEnum}" help:"Profile the command (${pprofModeEnum})." placeholder:"MODE" short:"p"`
	Dir     string `default:"${pprofDir}" help:"Directory receiving profiles."            type:"path"`
	Verbose bool   `help:"Let the profiler report where it writes."`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), "pprof"),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start profiles the rest of the run when a mode was selected.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{slog.String("mode", f.Mode), slog.String("dir", f.Dir)}

	log.DebugContext(ctx, "profiling", attrs...)

	session := profile.New(
		profile.WithMode(f.Mode),
		profile.WithPath(f.Dir),
		profile.WithQuiet(!f.Verbose),
	).Start()

	return func() {
		session.Stop()
		log.DebugContext(ctx, "profile written", attrs...)
	}
}
