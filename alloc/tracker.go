package alloc

import "context"

// Tracker is a [Provider] that forwards to another provider and counts the
// bytes it currently holds, so that all of them can be returned at once.
type Tracker struct {
	provider    Provider
	outstanding int
}

// Track returns a tracker forwarding to p.
func Track(p Provider) *Tracker {
	if p == nil {
		p = Heap()
	}

	return &Tracker{provider: p}
}

// Alloc implements [Provider].
func (t *Tracker) Alloc(size int) bool {
	if !t.provider.Alloc(size) {
		return false
	}

	t.outstanding += size

	return true
}

// Realloc implements [Provider].
func (t *Tracker) Realloc(oldSize, newSize int) bool {
	if !t.provider.Realloc(oldSize, newSize) {
		return false
	}

	t.outstanding += newSize - oldSize

	return true
}

// Free implements [Provider].
func (t *Tracker) Free(size int) {
	t.provider.Free(size)
	t.outstanding -= size
}

// Outstanding returns the number of bytes currently held.
func (t *Tracker) Outstanding() int { return t.outstanding }

// ReleaseAll returns every outstanding byte to the underlying provider.
func (t *Tracker) ReleaseAll() {
	if t.outstanding > 0 {
		t.provider.Free(t.outstanding)
	}

	t.outstanding = 0
}

// Scoped returns an allocator with a's options whose requests are counted
// by a new [Tracker] forwarding to a's provider.
func (a *Allocator) Scoped() (*Allocator, *Tracker) {
	t := Track(a.Provider())

	scoped := &Allocator{provider: t}
	if a != nil {
		scoped.logger = a.logger
		scoped.ctx = a.ctx
	}

	if scoped.ctx == nil {
		scoped.ctx = context.Background()
	}

	return scoped, t
}
