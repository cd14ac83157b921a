package alloc

const (
	// DefaultCapacity is the initial capacity of a [Vector] created with
	// capacity zero.
	DefaultCapacity = 4
	// GrowFactor is the multiplier applied to a full [Vector]'s capacity.
	GrowFactor = 2
)

// Vector is a growable sequence of T whose storage is charged against an
// [Allocator].
type Vector[T any] struct {
	alloc *Allocator
	data  []T
}

// NewVector returns an empty vector with the given initial capacity,
// or [DefaultCapacity] if capacity is zero.
func NewVector[T any](a *Allocator, capacity int) *Vector[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Vector[T]{
		alloc: a,
		data:  Make[T](a, 0, capacity),
	}
}

// Len returns the number of items in v.
func (v *Vector[T]) Len() int { return len(v.data) }

// Cap returns the number of items v can hold without growing.
func (v *Vector[T]) Cap() int { return cap(v.data) }

// Get returns the item at index i.
// It reports false if i is out of range.
func (v *Vector[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(v.data) {
		var zero T

		return zero, false
	}

	return v.data[i], true
}

// Set replaces the item at index i.
// It reports false, and changes nothing, if i is out of range.
func (v *Vector[T]) Set(i int, item T) bool {
	if i < 0 || i >= len(v.data) {
		return false
	}

	v.data[i] = item

	return true
}

// Push appends item, growing v by [GrowFactor] when it is full.
func (v *Vector[T]) Push(item T) {
	if len(v.data) == cap(v.data) {
		v.Reserve(max(DefaultCapacity, cap(v.data)*GrowFactor))
	}

	v.data = append(v.data, item)
}

// Append pushes each of items in order.
func (v *Vector[T]) Append(items ...T) {
	if need := len(v.data) + len(items); need > cap(v.data) {
		v.Reserve(max(need, cap(v.data)*GrowFactor))
	}

	v.data = append(v.data, items...)
}

// Reserve raises the capacity of v to at least capacity.
// A capacity smaller than the current one is ignored.
func (v *Vector[T]) Reserve(capacity int) {
	v.data = Grow(v.alloc, v.data, capacity)
}

// Clear removes every item but keeps the storage.
func (v *Vector[T]) Clear() {
	clear(v.data)
	v.data = v.data[:0]
}

// Slice returns the items of v. The slice aliases v's storage and is
// invalidated by the next call that grows v.
func (v *Vector[T]) Slice() []T { return v.data }

// Destroy releases v's storage. v must not be used afterwards.
func (v *Vector[T]) Destroy() {
	Release(v.alloc, v.data)
	v.data = nil
}
