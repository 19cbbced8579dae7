package pool

import (
	"fmt"
	"sync"
	"unsafe"
)

// Pool is a fixed-size object pool for one value type T. It recycles
// storage for many instances of T, trading the generality of the Go heap
// for predictable allocation latency and reduced GC pressure.
//
// A Pool must be created with New; the zero value is not usable.
type Pool[T any] struct {
	blockCount int
	maxChunks  int
	localOn    bool
	debug      bool

	slotSize uintptr
	align    uintptr

	mu         sync.Mutex
	chunks     []*chunk
	globalHead unsafe.Pointer // *freeNode
	globalFree int
	total      int

	cachesMu sync.Mutex
	caches   map[uint64]*localCache

	debugMu sync.Mutex
	live    map[unsafe.Pointer]struct{}
}

// New creates a Pool[T] and eagerly allocates one initial chunk, so the
// first Allocate is contention-free.
func New[T any](opts ...Option) (*Pool[T], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	size, align := slotLayout[T]()
	p := &Pool[T]{
		blockCount: cfg.blockCount,
		maxChunks:  cfg.maxChunks,
		localOn:    cfg.localOn,
		debug:      cfg.debug,
		slotSize:   size,
		align:      align,
		caches:     make(map[uint64]*localCache),
	}
	if p.debug {
		p.live = make(map[unsafe.Pointer]struct{})
	}

	p.mu.Lock()
	err := p.allocateChunkLocked()
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Allocate returns an uninitialized, correctly aligned *T. The contents
// are not cleared: the slot's first word still holds the free-list link
// it carried while free, and the rest is whatever the slot last held (the
// DEAD fill in debug mode, zero bytes for a slot never used before);
// callers that need a clean value should use Construct or ConstructFunc.
func (p *Pool[T]) Allocate() (*T, error) {
	if !p.localOn {
		return p.allocateGlobal()
	}

	lc := p.getLocalCache()
	if lc.head == nil {
		if err := p.refillLocal(lc); err != nil {
			return nil, err
		}
	}

	node := (*freeNode)(lc.head)
	lc.head = node.next
	lc.n.Add(-1)

	slot := unsafe.Pointer(node)
	p.trackAlloc(slot)
	return (*T)(slot), nil
}

func (p *Pool[T]) allocateGlobal() (*T, error) {
	p.mu.Lock()
	if p.globalHead == nil {
		if err := p.allocateChunkLocked(); err != nil {
			p.mu.Unlock()
			return nil, err
		}
	}
	if p.globalHead == nil {
		p.mu.Unlock()
		return nil, ErrExhausted
	}

	node := (*freeNode)(p.globalHead)
	p.globalHead = node.next
	p.globalFree--
	p.mu.Unlock()

	slot := unsafe.Pointer(node)
	p.trackAlloc(slot)
	return (*T)(slot), nil
}

// Construct allocates a slot and copies v into it.
func (p *Pool[T]) Construct(v T) (*T, error) {
	ptr, err := p.Allocate()
	if err != nil {
		return nil, err
	}
	*ptr = v
	return ptr, nil
}

// ConstructFunc allocates a zeroed slot and runs fn on it. If fn returns
// an error, the slot is returned to the caller's cache before the error
// is surfaced: a fallible initializer never leaks its slot.
func (p *Pool[T]) ConstructFunc(fn func(*T) error) (*T, error) {
	ptr, err := p.Allocate()
	if err != nil {
		return nil, err
	}
	var zero T
	*ptr = zero
	if fn != nil {
		if ferr := fn(ptr); ferr != nil {
			p.Deallocate(ptr)
			return nil, ferr
		}
	}
	return ptr, nil
}

// Deallocate returns ptr to this pool without running any destructor
// logic on *ptr. Nil is a no-op. In debug mode, deallocating a pointer
// this pool never issued panics with ErrUnknownPointer.
func (p *Pool[T]) Deallocate(ptr *T) {
	if ptr == nil {
		return
	}
	slot := unsafe.Pointer(ptr)

	if p.debug {
		p.debugMu.Lock()
		if _, ok := p.live[slot]; !ok {
			p.debugMu.Unlock()
			panic(ErrUnknownPointer)
		}
		delete(p.live, slot)
		p.debugMu.Unlock()
		fillDead(slot, p.slotSize)
	}

	if !p.localOn {
		p.deallocateGlobal(slot)
		return
	}

	lc := p.getLocalCache()
	node := (*freeNode)(slot)
	node.next = lc.head
	lc.head = slot
	lc.n.Add(1)

	if int(lc.n.Load()) > p.blockCount {
		p.spillLocal(lc)
	}
}

func (p *Pool[T]) deallocateGlobal(slot unsafe.Pointer) {
	node := (*freeNode)(slot)
	p.mu.Lock()
	node.next = p.globalHead
	p.globalHead = slot
	p.globalFree++
	p.mu.Unlock()
}

// Destroy zeroes *ptr (the Go analogue of running T's destructor, since Go
// value types have none) and returns the slot to the pool. Nil is a
// no-op.
func (p *Pool[T]) Destroy(ptr *T) {
	if ptr == nil {
		return
	}
	var zero T
	*ptr = zero
	p.Deallocate(ptr)
}

// Reserve grows the pool, if necessary, so it owns at least n chunks.
func (p *Pool[T]) Reserve(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.chunks) < n {
		if err := p.allocateChunkLocked(); err != nil {
			return err
		}
	}
	return nil
}

// FreeCount returns the number of slots currently free, across the global
// list and every goroutine-local cache.
func (p *Pool[T]) FreeCount() int {
	p.mu.Lock()
	n := p.globalFree
	p.cachesMu.Lock()
	for _, lc := range p.caches {
		n += int(lc.n.Load())
	}
	p.cachesMu.Unlock()
	p.mu.Unlock()
	return n
}

// TotalCount returns the total number of slots the pool currently owns.
func (p *Pool[T]) TotalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// AllocatedCount returns TotalCount - FreeCount.
func (p *Pool[T]) AllocatedCount() int {
	return p.TotalCount() - p.FreeCount()
}

func (p *Pool[T]) trackAlloc(slot unsafe.Pointer) {
	if !p.debug {
		return
	}
	p.debugMu.Lock()
	p.live[slot] = struct{}{}
	p.debugMu.Unlock()
}

// Close checks, in debug mode, that no slots remain outstanding and
// returns ErrLeakOnTeardown (wrapped with a count) if they do. In release
// mode (WithDebug(false)) it always returns nil: there is nothing to
// check. Go has no destructors, so this never runs automatically; call
// it explicitly, or use MustClose for a panic-on-leak variant.
func (p *Pool[T]) Close() error {
	if !p.debug {
		return nil
	}
	p.debugMu.Lock()
	n := len(p.live)
	p.debugMu.Unlock()
	if n > 0 {
		return fmt.Errorf("%w: %d objects not deallocated", ErrLeakOnTeardown, n)
	}
	return nil
}

// MustClose calls Close and panics if it returns an error: an abort-on-
// leak variant for callers that want teardown to be fatal.
func (p *Pool[T]) MustClose() {
	if err := p.Close(); err != nil {
		panic(err)
	}
}
