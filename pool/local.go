package pool

import (
	"sync/atomic"
	"unsafe"

	"github.com/Lovening/craftrix/internal/gid"
)

// localCache is a goroutine-owned free list. head is mutated only by the
// owning goroutine; n is atomic so FreeCount can read it from any
// goroutine without racing the owner's plain writes to head.
type localCache struct {
	head unsafe.Pointer // *freeNode
	n    atomic.Int64
}

// getLocalCache returns the calling goroutine's cache, creating it under
// cachesMu on first access. The returned pointer is safe to use without
// further locking from the calling goroutine: no other goroutine ever
// mutates head, and n is accessed atomically.
func (p *Pool[T]) getLocalCache() *localCache {
	id := gid.Get()

	p.cachesMu.Lock()
	lc, ok := p.caches[id]
	if !ok {
		lc = &localCache{}
		p.caches[id] = lc
	}
	p.cachesMu.Unlock()
	return lc
}

// refillLocal pulls a batch of up to min(32, blockCount/4) slots from the
// global free list into lc, allocating a new chunk first if the global
// list is empty.
func (p *Pool[T]) refillLocal(lc *localCache) error {
	batch := p.blockCount / 4
	if batch > 32 {
		batch = 32
	}
	if batch < 1 {
		batch = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.globalHead == nil {
		if err := p.allocateChunkLocked(); err != nil {
			return err
		}
	}
	if p.globalHead == nil {
		return ErrExhausted
	}

	head := p.globalHead
	node := (*freeNode)(head)
	count := 1
	for node.next != nil && count < batch {
		node = (*freeNode)(node.next)
		count++
	}
	rest := node.next

	node.next = lc.head
	lc.head = head
	lc.n.Add(int64(count))

	p.globalHead = rest
	p.globalFree -= count
	return nil
}

// spillLocal returns half of lc's free list to the pool-global list. It is
// called once lc has grown past blockCount slots.
func (p *Pool[T]) spillLocal(lc *localCache) {
	n := int(lc.n.Load())
	toReturn := n / 2
	if toReturn < 1 {
		return
	}

	head := lc.head
	tail := (*freeNode)(head)
	count := 1
	for count < toReturn {
		tail = (*freeNode)(tail.next)
		count++
	}
	rest := tail.next

	lc.head = rest
	lc.n.Add(int64(-count))

	p.mu.Lock()
	tail.next = p.globalHead
	p.globalHead = head
	p.globalFree += count
	p.mu.Unlock()
}
