package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

type alignTest struct {
	a int64
	b byte
}

func TestSlotLayout(t *testing.T) {
	size, align := slotLayout[alignTest]()
	assert.GreaterOrEqual(t, size, unsafe.Sizeof(alignTest{}))
	assert.GreaterOrEqual(t, align, unsafe.Alignof(alignTest{}))
	assert.Zero(t, size%align, "slot size must be a multiple of its alignment")
}

func TestSlotLayoutAtLeastFreeNodeSized(t *testing.T) {
	type tiny struct{ b byte }
	size, _ := slotLayout[tiny]()
	assert.GreaterOrEqual(t, size, unsafe.Sizeof(freeNode{}))
}

func TestChunkSlotsAreAlignedAndDistinct(t *testing.T) {
	size, align := slotLayout[alignTest]()
	c := newChunk(8, size, align)

	seen := make(map[uintptr]bool)
	for i := 0; i < 8; i++ {
		p := c.slot(i)
		addr := uintptr(p)
		assert.Zero(t, addr%align)
		assert.False(t, seen[addr])
		seen[addr] = true
		assert.True(t, c.contains(p))
	}
}

func TestChunkContainsRejectsOutOfRange(t *testing.T) {
	size, align := slotLayout[alignTest]()
	c := newChunk(4, size, align)

	before := unsafe.Pointer(uintptr(c.base) - size)
	after := unsafe.Pointer(uintptr(c.base) + uintptr(4)*size)
	assert.False(t, c.contains(before))
	assert.False(t, c.contains(after))
}

func TestReleaseSomeChunksOnlyWhenFullyFree(t *testing.T) {
	p, err := New[int](WithChunkBlockCount(4))
	if err != nil {
		t.Fatal(err)
	}
	defer p.MustClose()

	p.mu.Lock()
	released := p.releaseSomeChunksLocked()
	p.mu.Unlock()
	assert.True(t, released, "a pool with a single untouched chunk should be fully releasable")
}

func TestReleaseSomeChunksSkipsChunksWithLiveSlots(t *testing.T) {
	p, err := New[int](WithChunkBlockCount(4))
	if err != nil {
		t.Fatal(err)
	}
	defer p.MustClose()

	v, err := p.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	defer p.Deallocate(v)

	p.mu.Lock()
	released := p.releaseSomeChunksLocked()
	p.mu.Unlock()
	assert.False(t, released, "a chunk with a live slot must not be released")
}
