package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/doji/log"
)

// logFormat applies the log format as soon as kong decodes the flag, so
// errors raised later during parsing are already written in that format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel applies the log level as soon as kong decodes the flag.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  help:"Set log level (${logLevelEnum})."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"RFC3339"      help:"Set timestamp format (Go layout or name; empty disables)."`
	Caller     bool      `default:"false"        help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"         help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logger flag. The returned func logs the end
// of the run.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {
		log.TraceContext(ctx, "logger stopped", slog.Any("cause", context.Cause(ctx)))
	}
}

// scan applies logger flags found in args before kong parses them, so the
// logger is configured regardless of flag position. Boolean flags do not
// pass through encoding.TextUnmarshaler and are only handled here.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		negate := strings.HasPrefix(name, "--no-log-")
		if !negate && !strings.HasPrefix(name, "--log-") {
			continue
		}

		if negate && name != "--no-log-pretty" && name != "--no-log-caller" {
			continue
		}

		// next consumes the following argument as the flag value.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch strings.TrimPrefix(strings.TrimPrefix(name, "--"), "no-") {
		case "log-level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "log-format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "log-time-layout":
			f.TimeLayout = next()
			log.Config(log.WithTimeLayout(f.TimeLayout))

		case "log-pretty":
			if v, ok := scanBool(value, assigned, negate); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "log-caller":
			if v, ok := scanBool(value, assigned, negate); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// scanBool decodes a boolean flag. A bare flag is true, or false when
// negated; an assigned value must parse with strconv.ParseBool.
func scanBool(value string, assigned, negate bool) (bool, bool) {
	v := true

	if assigned {
		var err error
		if v, err = strconv.ParseBool(value); err != nil {
			return false, false
		}
	}

	return v != negate, true
}
