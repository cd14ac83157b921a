// Package alloc is the allocation substrate of the doji front end.
//
// Every buffer and tree node the scanner and parser create is charged against
// a [Provider], the host-supplied capability that admits or refuses each
// request. An [Allocator] wraps a Provider and never reports failure to its
// caller: when the provider refuses, the allocator abandons the whole
// top-level operation, unwinding straight to the recovery point established
// by [Guard]. Intermediate frames perform no cleanup and carry no error
// checks; the abandoned operation's results are simply discarded.
//
// Usage:
//
//	a := alloc.New(alloc.Limit(1 << 20))
//	err := alloc.Guard(func() error {
//		v := alloc.NewVector[int64](a, 0)
//		for i := range 1000 {
//			v.Push(int64(i))
//		}
//		return nil
//	})
//	if errors.Is(err, alloc.ErrOutOfMemory) {
//		// the provider refused a request
//	}
//
// Exactly one recovery point must be active per top-level operation.
// Nesting one top-level operation inside another's Guard is not supported.
package alloc
