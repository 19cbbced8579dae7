package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleReleaseReturnsSlot(t *testing.T) {
	p, err := New[widget](WithChunkBlockCount(4))
	require.NoError(t, err)
	defer p.MustClose()

	before := p.FreeCount()

	h, err := p.Share(widget{id: 1, name: "shared"})
	require.NoError(t, err)
	assert.Equal(t, before-1, p.FreeCount())

	h.Release()
	assert.Equal(t, before, p.FreeCount())
}

func TestHandleCloneSharesOneSlot(t *testing.T) {
	p, err := New[widget](WithChunkBlockCount(4))
	require.NoError(t, err)
	defer p.MustClose()

	before := p.FreeCount()

	h, err := p.Share(widget{id: 2})
	require.NoError(t, err)
	clone := h.Clone()

	assert.Equal(t, before-1, p.FreeCount(), "cloning must not consume another slot")

	h.Release()
	assert.Equal(t, before-1, p.FreeCount(), "slot must survive while a clone is outstanding")

	clone.Release()
	assert.Equal(t, before, p.FreeCount())
}

func TestHandleReleaseFromAnotherGoroutine(t *testing.T) {
	p, err := New[widget](WithChunkBlockCount(4))
	require.NoError(t, err)
	defer p.MustClose()

	h, err := p.Share(widget{id: 3})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Release()
	}()
	<-done

	assert.Equal(t, p.TotalCount(), p.FreeCount())
}
