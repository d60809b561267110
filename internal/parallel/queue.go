package parallel

import (
	"sync"

	"github.com/eapache/queue"
)

// ItemQueue is the shared FIFO drained by the next-free models.
//
// It is filled with the ids 0..n-1 in ascending order when created, before any
// worker sees it. Poll is atomic and destructive, so under any number of
// concurrent callers each id is returned exactly once.
//
// Thread safety: ItemQueue is safe for concurrent use.
type ItemQueue struct {
	mu     sync.Mutex
	items  *queue.Queue
	total  int
	served int
}

// NewItemQueue creates a queue pre-filled with 0..n-1.
// A non-positive n yields an empty queue.
func NewItemQueue(n int) *ItemQueue {
	q := &ItemQueue{items: queue.New()}
	for i := range max(n, 0) {
		q.items.Add(i)
	}
	q.total = q.items.Length()
	return q
}

// Poll removes and returns the head of the queue.
// The second result is false once the queue is exhausted.
func (q *ItemQueue) Poll() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 {
		return 0, false
	}
	q.served++
	return q.items.Remove().(int), true
}

// Len returns the number of ids still queued.
func (q *ItemQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Total returns the number of ids the queue was created with.
func (q *ItemQueue) Total() int {
	return q.total
}

// Served returns how many ids have been handed out so far.
func (q *ItemQueue) Served() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.served
}
