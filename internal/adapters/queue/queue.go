// Package queue decouples the publish loop from slow transports with
// bounded drop-oldest queues.
package queue

import (
	"context"
	"sync"

	"github.com/nivir/beginner-tutorials/internal/domain"
)

// Sink delivers one item to a transport.
type Sink[T any] func(ctx context.Context, item T) error

// Hooks report queue events. Nil funcs are ignored.
type Hooks struct {
	// OnDrop is called when an item is evicted to make room for a newer one.
	OnDrop func(topic string)
	// OnError is called when the sink fails to deliver an item.
	OnError func(topic string, err error)
}

// Queue is a bounded FIFO drained by a single goroutine. When full, Push
// evicts the oldest pending item.
type Queue[T any] struct {
	topic    string
	capacity int
	sink     Sink[T]
	hooks    Hooks

	mu      sync.Mutex
	items   []T
	closed  bool
	started bool

	wake chan struct{}
	done chan struct{}
}

// New creates a queue for topic holding at most capacity pending items.
// A capacity below 1 is treated as 1.
func New[T any](topic string, capacity int, sink Sink[T], hooks Hooks) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{
		topic:    topic,
		capacity: capacity,
		sink:     sink,
		hooks:    hooks,
		items:    make([]T, 0, capacity),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Topic returns the topic the queue delivers to.
func (q *Queue[T]) Topic() string {
	return q.topic
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Push enqueues item without blocking on the transport.
// Returns domain.ErrQueueClosed after Close.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return domain.ErrQueueClosed
	}
	dropped := false
	if len(q.items) == q.capacity {
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		dropped = true
	}
	q.items = append(q.items, item)
	q.mu.Unlock()

	if dropped && q.hooks.OnDrop != nil {
		q.hooks.OnDrop(q.topic)
	}

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Start launches the drain goroutine. Items are delivered with a context
// derived from ctx that is not canceled with it, so Close can still flush.
// Calling Start more than once has no effect.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	go q.drain(context.WithoutCancel(ctx))
}

// Close stops accepting items, delivers what is pending and waits for the
// drain goroutine. Close on a queue that was never started discards pending
// items.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	started := q.started
	q.mu.Unlock()

	if !started {
		close(q.done)
		return
	}

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
}

func (q *Queue[T]) drain(ctx context.Context) {
	defer close(q.done)

	for range q.wake {
		for {
			item, ok := q.pop()
			if !ok {
				break
			}
			if err := q.sink(ctx, item); err != nil && q.hooks.OnError != nil {
				q.hooks.OnError(q.topic, err)
			}
		}

		q.mu.Lock()
		finished := q.closed && len(q.items) == 0
		q.mu.Unlock()
		if finished {
			return
		}
	}
}

func (q *Queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}
