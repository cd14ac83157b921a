package lang

import (
	"github.com/ardnew/doji/log"
)

// DefaultMaxDepth is the default limit on expression nesting.
const DefaultMaxDepth = 256

type config struct {
	maxDepth int
	logger   log.Logger // outside the cache key
}

// Option configures parsing behavior.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth of expressions. Deeper input
// is rejected with a syntax error instead of exhausting the stack.
// Non-positive values select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		c.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	c := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
