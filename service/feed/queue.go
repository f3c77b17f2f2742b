package feed

import "sort"

type entry[T any] struct {
	item     T
	priority float64
}

// PriorityQueue is a minimal array-backed queue kept sorted by descending priority.
// Insertion cost is O(n) per item, which is fine for the small batches the feed
// scorer works with; a binary heap would only matter at much larger sizes.
type PriorityQueue[T any] struct {
	entries []entry[T]
}

// NewPriorityQueue creates an empty queue with room for n items
func NewPriorityQueue[T any](n int) *PriorityQueue[T] {
	return &PriorityQueue[T]{entries: make([]entry[T], 0, n)}
}

// Enqueue inserts the item so the queue stays ordered by descending priority.
// Equal priorities keep insertion order.
func (q *PriorityQueue[T]) Enqueue(item T, priority float64) {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].priority < priority
	})
	q.entries = append(q.entries, entry[T]{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = entry[T]{item: item, priority: priority}
}

// Dequeue removes and returns the highest-priority item. The second return is false
// when the queue is empty.
func (q *PriorityQueue[T]) Dequeue() (T, bool) {
	if len(q.entries) == 0 {
		var zero T
		return zero, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head.item, true
}

// IsEmpty reports whether the queue has no items
func (q *PriorityQueue[T]) IsEmpty() bool {
	return len(q.entries) == 0
}

// Size returns the number of items in the queue
func (q *PriorityQueue[T]) Size() int {
	return len(q.entries)
}
