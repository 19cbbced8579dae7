// Package pool implements a fixed-size object pool for a single value
// type T: a chunked, slot-based allocator that recycles storage instead of
// handing it back to the Go heap and garbage collector.
//
// # Overview
//
// A Pool[T] is useful for:
//   - High-churn allocation of one struct type (connection objects, request
//     contexts, protocol frames) where GC pressure dominates latency
//   - Predictable allocation cost under concurrent load via goroutine-local
//     caches that avoid a global lock on the common path
//   - Debug-mode leak detection: every live slot is tracked and a pool that
//     still has outstanding slots at Close time reports it
//
// # Basic Usage
//
//	p, _ := pool.New[Widget](pool.WithChunkBlockCount(256))
//	defer p.MustClose()
//
//	w, err := p.Construct(Widget{ID: 1})
//	// ... use w ...
//	p.Destroy(w)
//
// # Thread Safety
//
// All Pool[T] methods are safe for concurrent use from many goroutines.
// Goroutine-local caches (enabled by default) are each owned exclusively
// by the goroutine that created them; only their creation and aggregate
// reads touch a shared lock.
//
// # Non-goals
//
// A Pool[T] never supports variable-sized allocations, arrays of T, or
// reuse of its storage for any type other than T. For that, use the Go
// heap or a general-purpose arena.
package pool
