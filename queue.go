package main

import (
	"errors"
	"sync"
)

var errQueueClosed = errors.New("queue closed")

// Queue is an unbounded FIFO. Any goroutine may Push; a single consumer takes
// everything queued so far with Drain.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errQueueClosed
	}
	q.items = append(q.items, item)
	return nil
}

// Drain removes and returns the queued items in arrival order.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close drops anything still queued; later pushes fail with errQueueClosed.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.items = nil
}
