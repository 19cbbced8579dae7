// Package queue provides a bounded, blocking producer/consumer queue of
// framed documents, sitting between a framer's DocFunc callback and
// whatever goroutine processes documents downstream.
package queue

import (
	"context"
	"sync"

	"github.com/eapache/queue"
)

// Queue is a bounded FIFO of []byte documents. Push blocks while the
// queue is at capacity; Pop blocks while the queue is empty. Both honor
// ctx cancellation.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	q        *queue.Queue
	max      int
	closed   bool
}

// New creates a Queue that holds at most max documents at a time.
func New(max int) *Queue {
	if max <= 0 {
		max = 1
	}
	q := &Queue{q: queue.New(), max: max}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push enqueues doc, blocking if the queue is full. It returns ctx.Err()
// if ctx is cancelled first, or ErrClosed if the queue has been closed.
func (q *Queue) Push(ctx context.Context, doc []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.q.Length() >= q.max && !q.closed {
		if !waitOrCancel(ctx, &q.mu, q.notFull) {
			return ctx.Err()
		}
	}
	if q.closed {
		return ErrClosed
	}
	q.q.Add(doc)
	q.notEmpty.Signal()
	return nil
}

// Pop dequeues the oldest document, blocking if the queue is empty. It
// returns ok == false once the queue is closed and drained, or
// ctx.Err() != nil if ctx is cancelled first.
func (q *Queue) Pop(ctx context.Context) (doc []byte, ok bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.q.Length() == 0 && !q.closed {
		if !waitOrCancel(ctx, &q.mu, q.notEmpty) {
			return nil, false, ctx.Err()
		}
	}
	if q.q.Length() == 0 {
		return nil, false, nil
	}
	v := q.q.Peek()
	q.q.Remove()
	q.notFull.Signal()
	return v.([]byte), true, nil
}

// Len reports the current number of buffered documents.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.q.Length()
}

// Close marks the queue closed, waking every blocked Push and Pop.
// Buffered documents remain poppable until drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// waitOrCancel calls cond.Wait() but gives up early if ctx is done,
// re-acquiring mu before returning either way so the caller's deferred
// Unlock stays correct.
func waitOrCancel(ctx context.Context, mu *sync.Mutex, cond *sync.Cond) bool {
	if ctx.Err() != nil {
		return false
	}
	done := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		close(done)
		mu.Lock()
		cond.Broadcast()
		mu.Unlock()
	})
	defer stop()

	cond.Wait()
	select {
	case <-done:
		return false
	default:
		return ctx.Err() == nil
	}
}
