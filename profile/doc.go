// Package profile runs an optional [github.com/pkg/profile] session around
// a doji command.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof ./cmd/doji
//	doji --pprof-mode cpu --pprof-dir ./profiles parse big.doji
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing, so
// callers never need to check which build they are running in.
//
// Profiles are written to the configured directory and named after their
// mode (cpu.pprof, mem.pprof, trace.out). Inspect them with
//
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The tagged build also imports [net/http/pprof], registering its handlers
// on [net/http.DefaultServeMux] for commands that serve HTTP, such as
// "doji check --watch --metrics".
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
