package pool

import "sync/atomic"

// Handle is a reference-counted handle to a value constructed inside a
// Pool. Its final Release runs Destroy on the owning pool; Clone shares
// ownership so multiple clones count as a single live slot. A Handle is
// safe to Release from a different goroutine than the one that created
// it: the release path simply reaches the pool's own Deallocate, which is
// itself goroutine-safe.
type Handle[T any] struct {
	pool *Pool[T]
	ptr  *T
	refs *atomic.Int32
}

// Share constructs v in the pool and returns a handle owning it.
func (p *Pool[T]) Share(v T) (*Handle[T], error) {
	ptr, err := p.Construct(v)
	if err != nil {
		return nil, err
	}
	refs := &atomic.Int32{}
	refs.Store(1)
	return &Handle[T]{pool: p, ptr: ptr, refs: refs}, nil
}

// Get returns the handle's underlying value pointer. It is only valid
// while at least one clone of the handle has not been released.
func (h *Handle[T]) Get() *T {
	return h.ptr
}

// Clone returns a new handle sharing ownership of the same slot.
func (h *Handle[T]) Clone() *Handle[T] {
	h.refs.Add(1)
	return &Handle[T]{pool: h.pool, ptr: h.ptr, refs: h.refs}
}

// Release decrements the handle's reference count and, if it reaches
// zero, destroys the underlying value and returns its slot to the pool.
func (h *Handle[T]) Release() {
	if h.refs.Add(-1) == 0 {
		h.pool.Destroy(h.ptr)
	}
}
