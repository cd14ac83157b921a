package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of Modes; empty disables profiling
	Path  string // output directory; empty uses the current directory
	Quiet bool   // suppress the profiler's own log output
}

// Option modifies a [Profiler].
type Option func(Profiler) Profiler

// New returns a profiler with opts applied.
func New(opts ...Option) Profiler {
	var p Profiler
	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet controls the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling and returns the session. If p has no mode, the
// mode is unknown, or profiling was not compiled in, the session is a
// no-op. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
