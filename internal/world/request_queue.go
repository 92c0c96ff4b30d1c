package world

import (
	"context"
	"sync"
)

// requestQueue is an unbounded FIFO of chunk coordinates. Push never blocks;
// Pop blocks until an item arrives, the queue is closed, or ctx is done.
type requestQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []ChunkCoord
	head   int
	closed bool
}

func newRequestQueue() *requestQueue {
	q := &requestQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends coord. Pushes after Close are dropped.
func (q *requestQueue) Push(coord ChunkCoord) {
	q.mu.Lock()
	if !q.closed {
		q.items = append(q.items, coord)
		q.cond.Signal()
	}
	q.mu.Unlock()
}

// Pop removes the oldest coordinate. ok is false once the queue is closed
// or ctx is cancelled.
func (q *requestQueue) Pop(ctx context.Context) (coord ChunkCoord, ok bool) {
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for q.head == len(q.items) && !q.closed && ctx.Err() == nil {
		q.cond.Wait()
	}
	if q.closed || ctx.Err() != nil {
		return ChunkCoord{}, false
	}
	coord = q.items[q.head]
	q.head++
	// Compact once the consumed prefix dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 1024 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return coord, true
}

// Len returns the number of queued coordinates.
func (q *requestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Drain discards all queued coordinates.
func (q *requestQueue) Drain() {
	q.mu.Lock()
	q.items = q.items[:0]
	q.head = 0
	q.mu.Unlock()
}

// Close wakes all waiters; later Pops report !ok.
func (q *requestQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}
