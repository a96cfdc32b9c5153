// Package queue implements a generic double-ended queue backed by a ring buffer.
package queue

const minCap = 4

// Queue is a ring buffer deque. Capacity is always a power of two.
// Zero value is not usable, use New.
type Queue[T any] struct {
	items []T
	head  int
	n     int
}

// New creates a queue containing items in the given order.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, capFor(len(items)))}
	copy(q.items, items)
	q.n = len(items)
	return q
}

func capFor(n int) int {
	c := minCap
	for c < n {
		c <<= 1
	}
	return c
}

func (q *Queue[T]) mask() int {
	return len(q.items) - 1
}

// IsEmpty reports whether the queue has no items.
func (q *Queue[T]) IsEmpty() bool {
	return q.n == 0
}

// Append adds item to the back of the queue.
func (q *Queue[T]) Append(item T) *Queue[T] {
	q.reserve(1)
	q.items[(q.head+q.n)&q.mask()] = item
	q.n++
	return q
}

// Prepend adds item to the front of the queue.
func (q *Queue[T]) Prepend(item T) *Queue[T] {
	q.reserve(1)
	q.head = (q.head - 1) & q.mask()
	q.items[q.head] = item
	q.n++
	return q
}

// PrependAll puts items to the front of the queue keeping their order,
// so items[0] becomes the first item.
func (q *Queue[T]) PrependAll(items ...T) *Queue[T] {
	q.reserve(len(items))
	for i := len(items) - 1; i >= 0; i-- {
		q.head = (q.head - 1) & q.mask()
		q.items[q.head] = items[i]
	}
	q.n += len(items)
	return q
}

// First removes and returns the front item. Returns false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.n == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.mask()
	q.n--
	return item, true
}

func (q *Queue[T]) reserve(extra int) {
	if q.n+extra <= len(q.items) {
		return
	}

	items := make([]T, capFor(q.n+extra))
	m := q.mask()
	for i := 0; i < q.n; i++ {
		items[i] = q.items[(q.head+i)&m]
	}
	q.items = items
	q.head = 0
}
