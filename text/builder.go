// Package text provides the write-only text accumulator used to render
// spans, locations, diagnostics, and syntax trees.
package text

import (
	"strconv"

	"github.com/ardnew/doji/alloc"
)

// DefaultCapacity is the initial capacity of a [Builder] created with
// capacity zero.
const DefaultCapacity = 64

// Builder accumulates bytes into a growable buffer charged against an
// [alloc.Allocator]. Its zero value is not usable; create one with
// [NewBuilder].
type Builder struct {
	buf *alloc.Vector[byte]
}

// NewBuilder returns an empty builder with the given initial capacity,
// or [DefaultCapacity] if capacity is zero. A nil allocator admits every
// request.
func NewBuilder(a *alloc.Allocator, capacity int) *Builder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Builder{buf: alloc.NewVector[byte](a, capacity)}
}

// Len returns the number of bytes accumulated so far.
func (b *Builder) Len() int { return b.buf.Len() }

// Reset discards the accumulated bytes but keeps the storage.
func (b *Builder) Reset() { b.buf.Clear() }

// WriteByte appends c. The error is always nil.
func (b *Builder) WriteByte(c byte) error {
	b.buf.Push(c)

	return nil
}

// WriteString appends s. It returns len(s) and a nil error.
func (b *Builder) WriteString(s string) (int, error) {
	b.buf.Append([]byte(s)...)

	return len(s), nil
}

// Write appends p. It returns len(p) and a nil error.
func (b *Builder) Write(p []byte) (int, error) {
	b.buf.Append(p...)

	return len(p), nil
}

// WriteUint appends the decimal representation of n.
func (b *Builder) WriteUint(n uint64) {
	var scratch [24]byte

	b.buf.Append(strconv.AppendUint(scratch[:0], n, 10)...)
}

// WriteInt appends the decimal representation of n, with a leading '-' if
// n is negative.
func (b *Builder) WriteInt(n int64) {
	var scratch [24]byte

	b.buf.Append(strconv.AppendInt(scratch[:0], n, 10)...)
}

// WriteFloat appends the shortest decimal representation of f that parses
// back to f. Integral values keep a trailing ".0".
func (b *Builder) WriteFloat(f float64) {
	var scratch [32]byte

	s := strconv.AppendFloat(scratch[:0], f, 'g', -1, 64)
	if isIntegral(s) {
		s = append(s, '.', '0')
	}

	b.buf.Append(s...)
}

// Indent appends n spaces.
func (b *Builder) Indent(n int) {
	for range n {
		b.buf.Push(' ')
	}
}

// String finalizes the builder and returns the accumulated text.
// The builder may continue to be used afterwards.
func (b *Builder) String() string {
	return string(b.buf.Slice())
}

// Destroy releases the builder's storage.
func (b *Builder) Destroy() { b.buf.Destroy() }

func isIntegral(s []byte) bool {
	for _, c := range s {
		switch c {
		case '.', 'e', 'E', 'n', 'N', 'I': // fraction, exponent, NaN, Inf
			return false
		}
	}

	return true
}
