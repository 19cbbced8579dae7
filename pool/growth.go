package pool

import "unsafe"

// allocateChunkLocked allocates one new chunk and pushes all of its slots
// onto the global free list. Callers must hold p.mu.
func (p *Pool[T]) allocateChunkLocked() error {
	if p.maxChunks > 0 && len(p.chunks) >= p.maxChunks {
		return ErrExhausted
	}

	c, err := p.allocChunkWithBackoffLocked()
	if err != nil {
		return err
	}

	p.chunks = append(p.chunks, c)
	p.total += c.slotCount

	head := p.globalHead
	for i := c.slotCount - 1; i >= 0; i-- {
		node := (*freeNode)(c.slot(i))
		node.next = head
		head = unsafe.Pointer(node)
	}
	p.globalHead = head
	p.globalFree += c.slotCount
	return nil
}

// allocChunkWithBackoffLocked retries chunk allocation up to three times:
// on failure it releases up to chunks/4 (at least one) chunks whose every
// slot is currently on the global free list, and tries again.
func (p *Pool[T]) allocChunkWithBackoffLocked() (*chunk, error) {
	for attempt := 0; attempt < 3; attempt++ {
		c, ok := p.tryAllocChunk()
		if ok {
			return c, nil
		}
		if !p.releaseSomeChunksLocked() {
			return nil, ErrExhausted
		}
	}
	return nil, ErrExhausted
}

// tryAllocChunk recovers from the panic Go's allocator raises when a
// make([]byte, n) request cannot be satisfied (e.g. an absurd slot count
// overflowing the maximum slice length). A genuine host out-of-memory
// condition surfaces as a runtime fatal error, not a panic, and is not
// recoverable here; that limitation is inherent to Go, not this pool.
func (p *Pool[T]) tryAllocChunk() (c *chunk, ok bool) {
	defer func() {
		if recover() != nil {
			c, ok = nil, false
		}
	}()
	return newChunk(p.blockCount, p.slotSize, p.align), true
}

// releaseSomeChunksLocked releases up to max(1, len(chunks)/4) chunks
// whose every slot is currently on the global free list, starting from
// the most recently allocated. It returns false if none were releasable.
func (p *Pool[T]) releaseSomeChunksLocked() bool {
	if len(p.chunks) == 0 {
		return false
	}
	target := len(p.chunks) / 4
	if target < 1 {
		target = 1
	}

	released := 0
	for i := len(p.chunks) - 1; i >= 0 && released < target; i-- {
		c := p.chunks[i]
		if !p.chunkFullyFreeLocked(c) {
			continue
		}
		p.removeChunkFromFreeListLocked(c)
		p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
		p.total -= c.slotCount
		released++
	}
	return released > 0
}

// chunkFullyFreeLocked reports whether every slot of c currently appears
// on the global free list. It deliberately does not inspect goroutine
// caches: a slot sitting in a goroutine cache is not live, but treating
// the chunk as non-releasable in that case keeps this check a simple
// linear scan of the global list alone.
func (p *Pool[T]) chunkFullyFreeLocked(c *chunk) bool {
	if p.globalFree < c.slotCount {
		return false
	}
	count := 0
	node := p.globalHead
	for node != nil {
		if c.contains(node) {
			count++
			if count == c.slotCount {
				return true
			}
		}
		node = (*freeNode)(node).next
	}
	return false
}

// removeChunkFromFreeListLocked rebuilds the global free list with every
// node belonging to c removed.
func (p *Pool[T]) removeChunkFromFreeListLocked(c *chunk) {
	var newHead unsafe.Pointer
	var tail *freeNode
	removed := 0

	node := p.globalHead
	for node != nil {
		fn := (*freeNode)(node)
		next := fn.next
		if c.contains(node) {
			removed++
		} else {
			fn.next = nil
			if tail == nil {
				newHead = node
			} else {
				tail.next = node
			}
			tail = fn
		}
		node = next
	}
	p.globalHead = newHead
	p.globalFree -= removed
}
