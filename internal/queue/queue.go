// Package queue implements a FIFO ring buffer.
package queue

const minSize = 3

// Queue is a growable ring buffer. Buffer capacity is always size+1, size is 2^n-1.
type Queue[T any] struct {
	items      []T
	size       int
	head, tail int
}

func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	q.size = computeSize(len(items))
	q.items = make([]T, q.size+1)
	q.tail = copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue[T]) Len() int {
	return (q.tail - q.head) & q.size
}

// Append adds an item to the end of queue.
func (q *Queue[T]) Append(items ...T) *Queue[T] {
	for _, item := range items {
		q.items[q.tail] = item
		q.tail = (q.tail + 1) & q.size
		if q.tail == q.head {
			q.grow()
		}
	}
	return q
}

// First removes and returns the first item.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.head == q.tail {
		return zero, false
	}

	res := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) & q.size
	return res, true
}

// Clear removes all items keeping allocated buffer.
func (q *Queue[T]) Clear() {
	var zero T
	for !q.IsEmpty() {
		q.items[q.head] = zero
		q.head = (q.head + 1) & q.size
	}
	q.head, q.tail = 0, 0
}

func computeSize(length int) int {
	if length <= minSize {
		return minSize
	}

	length |= length >> 1
	length |= length >> 2
	length |= length >> 4
	length |= length >> 8
	length |= length >> 16
	return length | length>>32
}

// grow doubles the buffer, called when the buffer is completely filled (head == tail).
func (q *Queue[T]) grow() {
	total := q.size + 1
	items := make([]T, total<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.head = 0
	q.tail = total
	q.size = (total << 1) - 1
	q.items = items
}
