package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	q := New(4)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, []byte("a")))
	require.NoError(t, q.Push(ctx, []byte("b")))

	v, ok, err := q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", string(v))

	v, ok, err = q.Pop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", string(v))
}

func TestPushBlocksWhenFull(t *testing.T) {
	q := New(1)
	ctx := context.Background()
	require.NoError(t, q.Push(ctx, []byte("a")))

	pushed := make(chan struct{})
	go func() {
		_ = q.Push(ctx, []byte("b"))
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("Push should have blocked while queue is full")
	case <-time.After(20 * time.Millisecond):
	}

	_, _, err := q.Pop(ctx)
	require.NoError(t, err)

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatal("Push did not unblock after Pop freed capacity")
	}
}

func TestPopBlocksUntilPush(t *testing.T) {
	q := New(4)
	ctx := context.Background()

	var got []byte
	done := make(chan struct{})
	go func() {
		v, ok, err := q.Pop(ctx)
		if err == nil && ok {
			got = v
		}
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Push(ctx, []byte("x")))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Pop did not unblock after Push")
	}
	assert.Equal(t, "x", string(got))
}

func TestPopReturnsOnContextCancel(t *testing.T) {
	q := New(1)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, _, err := q.Pop(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Pop did not return after context cancellation")
	}
}

func TestCloseWakesBlockedPop(t *testing.T) {
	q := New(1)
	ctx := context.Background()

	resultCh := make(chan bool, 1)
	go func() {
		_, ok, err := q.Pop(ctx)
		resultCh <- ok && err == nil
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case ok := <-resultCh:
		assert.False(t, ok, "Pop on a closed, empty queue should report ok=false")
	case <-time.After(time.Second):
		t.Fatal("Close did not wake blocked Pop")
	}
}

func TestPushAfterCloseReturnsErrClosed(t *testing.T) {
	q := New(4)
	q.Close()
	err := q.Push(context.Background(), []byte("a"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConcurrentProducersConsumers(t *testing.T) {
	q := New(8)
	ctx := context.Background()
	const n = 200

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			require.NoError(t, q.Push(ctx, []byte{byte(i)}))
		}
	}()

	received := 0
	for received < n {
		_, ok, err := q.Pop(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		received++
	}
	wg.Wait()
	assert.Equal(t, n, received)
}
