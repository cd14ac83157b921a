// Package cli contains the command line interface for doji.
//
// # Usage
//
//	doji [flags] [parse] [source]          print the syntax tree (default)
//	doji [flags] tokens [source]           print the token stream
//	doji [flags] check <sources...>        report diagnostics
//	doji [flags] repl                      parse lines interactively
//
// A source of "-" (the default) reads stdin.
//
// # Memory
//
// --mem-limit bounds the bytes each parse may hold. A parse that exceeds it
// is abandoned and reports "out of memory"; check applies the limit to each
// file separately.
//
// # Configuration
//
// Flag defaults are read from config.toml and config.json in the
// configuration directory ($XDG_CONFIG_HOME/doji on Linux, or
// $DOJI_CONFIG_DIR when set). TOML keys name
// flags with either hyphens or underscores, and tables prefix their keys:
//
//	mem_limit = 1048576
//
//	[log]
//	level = "debug"
//	format = "json"
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o doji .
//
// It adds:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/doji/pprof)
//   - --pprof-verbose: Let the profiler log where it writes
package cli
