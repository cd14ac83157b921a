package alloc

import (
	"sync"
)

// Provider is the host capability that admits or refuses memory requests.
//
// Sizes are in bytes. A provider reports failure by returning false; it must
// never panic. Free is only ever called with a size that was previously
// admitted by Alloc or Realloc.
type Provider interface {
	Alloc(size int) bool
	Realloc(oldSize, newSize int) bool
	Free(size int)
}

type heap struct{}

// Heap returns a [Provider] that admits every request.
func Heap() Provider { return heap{} }

func (heap) Alloc(int) bool { return true }

func (heap) Realloc(int, int) bool { return true }

func (heap) Free(int) {}

// Budget is a [Provider] that admits requests while the number of
// outstanding bytes stays within a fixed maximum.
//
// A Budget is safe for concurrent use, so a single budget may be shared by
// several parses running in parallel.
type Budget struct {
	mu    sync.Mutex
	max   int
	inUse int
	peak  int
}

// Limit returns a [Budget] admitting at most max outstanding bytes.
// A non-positive max refuses every non-empty request.
func Limit(max int) *Budget {
	return &Budget{max: max}
}

// Alloc implements [Provider].
func (b *Budget) Alloc(size int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.charge(size)
}

// Realloc implements [Provider].
func (b *Budget) Realloc(oldSize, newSize int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.charge(newSize - oldSize)
}

// Free implements [Provider].
func (b *Budget) Free(size int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inUse = max(0, b.inUse-size)
}

// InUse returns the number of outstanding bytes.
func (b *Budget) InUse() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inUse
}

// Peak returns the largest number of outstanding bytes ever observed.
func (b *Budget) Peak() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.peak
}

// Max returns the configured byte limit.
func (b *Budget) Max() int { return b.max }

func (b *Budget) charge(delta int) bool {
	if delta > 0 && b.inUse+delta > b.max {
		return false
	}

	b.inUse = max(0, b.inUse+delta)
	b.peak = max(b.peak, b.inUse)

	return true
}
