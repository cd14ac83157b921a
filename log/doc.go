// Package log is a small structured logger built on [log/slog].
//
// A [Logger] is a value: configuring it with [Logger.Wrap] or adding
// attributes with [Logger.With] returns a new logger and leaves the
// original untouched, so loggers may be shared between goroutines freely.
// The zero Logger discards everything, which lets libraries accept a
// Logger option without requiring callers to provide one.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("parsed", slog.String("path", path), slog.Int("nodes", n))
//
// # Levels
//
// In addition to the four levels of slog, [LevelTrace] sits below
// [LevelDebug] for per-operation detail such as cache lookups and
// allocation refusals. Level names are parsed by [ParseLevel] and may carry
// an offset: "debug+2", "trace-1".
//
// # Output
//
// [FormatText] writes one key=value line per record and [FormatJSON] one
// object per record. With [WithPretty] both are colorized for terminals;
// without it they are produced by the standard slog handlers.
//
// # Package-level logging
//
// Functions such as [Info] and [DebugContext] write through a package-level
// logger that writes to standard error until [Config] or [SetDefault]
// replace it. Methods and functions without a context argument use
// [DefaultContextProvider].
package log
