package alloc

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/ardnew/doji/log"
	"github.com/ardnew/doji/pkg"
)

// ErrOutOfMemory is returned by [Guard] when the provider refused a request
// made during the guarded operation.
var ErrOutOfMemory = pkg.NewError("out of memory")

// abandon is the panic value raised when a provider refuses a request.
// Only [Guard] recovers it.
type abandon struct {
	op        string
	requested int
}

// Allocator charges memory requests against a [Provider].
//
// Alloc and Realloc have no failure result. A refused request abandons the
// current top-level operation, which resumes at the enclosing [Guard].
//
// A nil *Allocator is valid and admits every request.
type Allocator struct {
	provider Provider
	logger   log.Logger
	ctx      context.Context //nolint:containedctx
}

// Option configures an [Allocator].
type Option func(*Allocator)

// WithLogger sets the logger used to report abandoned operations.
func WithLogger(logger log.Logger) Option {
	return func(a *Allocator) {
		a.logger = logger
	}
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(a *Allocator) {
		a.ctx = ctx
	}
}

// New returns an [Allocator] drawing from p.
// A nil provider is replaced by [Heap].
func New(p Provider, opts ...Option) *Allocator {
	if p == nil {
		p = Heap()
	}

	a := &Allocator{provider: p, ctx: context.Background()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Provider returns the provider backing a.
func (a *Allocator) Provider() Provider {
	if a == nil {
		return Heap()
	}

	return a.provider
}

// Alloc charges size bytes, abandoning the operation if they are refused.
func (a *Allocator) Alloc(size int) {
	if a == nil || size <= 0 {
		return
	}

	if !a.provider.Alloc(size) {
		a.abandon("alloc", size)
	}
}

// Realloc changes a charge of oldSize bytes to newSize bytes.
// If the provider refuses, the original oldSize bytes are released before
// the operation is abandoned.
func (a *Allocator) Realloc(oldSize, newSize int) {
	if a == nil || oldSize == newSize {
		return
	}

	if !a.provider.Realloc(oldSize, newSize) {
		a.provider.Free(oldSize)
		a.abandon("realloc", newSize)
	}
}

// Free releases size bytes previously charged by Alloc or Realloc.
func (a *Allocator) Free(size int) {
	if a == nil || size <= 0 {
		return
	}

	a.provider.Free(size)
}

func (a *Allocator) abandon(op string, size int) {
	a.logger.DebugContext(a.ctx, "allocation refused",
		slog.String("op", op),
		slog.Int("requested", size),
	)

	panic(abandon{op: op, requested: size})
}

// Guard runs fn as a top-level operation.
//
// If any allocator used by fn abandons the operation, Guard returns
// [ErrOutOfMemory] decorated with the refused request. Any other panic
// propagates unchanged.
func Guard(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		ab, ok := r.(abandon)
		if !ok {
			panic(r)
		}

		err = ErrOutOfMemory.With(
			slog.String("op", ab.op),
			slog.Int("requested", ab.requested),
		)
	}()

	return fn()
}

// SizeOf returns the number of bytes charged for n values of type T.
func SizeOf[T any](n int) int {
	var zero T

	return int(unsafe.Sizeof(zero)) * n
}

// NewValue returns a pointer to a new zero value of type T charged against a.
func NewValue[T any](a *Allocator) *T {
	a.Alloc(SizeOf[T](1))

	return new(T)
}

// Make returns a slice of length n and capacity c charged against a.
func Make[T any](a *Allocator, n, c int) []T {
	c = max(n, c)
	a.Alloc(SizeOf[T](c))

	return make([]T, n, c)
}

// Grow returns s with its capacity raised to at least c, charging the
// difference against a. The contents of s are preserved.
func Grow[T any](a *Allocator, s []T, c int) []T {
	if c <= cap(s) {
		return s
	}

	a.Realloc(SizeOf[T](cap(s)), SizeOf[T](c))

	grown := make([]T, len(s), c)
	copy(grown, s)

	return grown
}

// Release returns the capacity of s to a.
func Release[T any](a *Allocator, s []T) {
	a.Free(SizeOf[T](cap(s)))
}
