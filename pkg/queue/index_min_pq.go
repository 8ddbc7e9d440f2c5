package queue

import (
	"container/heap"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidState    = errors.New("queue: invalid state")
	ErrIndexOutOfRange = errors.New("queue: index out of range")
)

// IndexMinPQ is a min priority queue of the indices [0, N), each with a float64 key.
// An index is either absent or present exactly once, and its key can be decreased while it is queued.
//
// Violating a precondition (e.g. inserting a present index or popping an empty queue) panics
// with an error wrapping ErrInvalidState or ErrIndexOutOfRange: a corrupted queue yields wrong shortest paths.
type IndexMinPQ struct {
	h indexHeap
}

// Create an empty queue for the indices [0, n)
func NewIndexMinPQ(n int) *IndexMinPQ {
	if n < 0 {
		panic(fmt.Errorf("%w: negative capacity %d", ErrIndexOutOfRange, n))
	}
	qp := make([]int, n)
	for i := range qp {
		qp[i] = absent
	}
	return &IndexMinPQ{h: indexHeap{
		pq:   make([]int, 0, n),
		qp:   qp,
		keys: make([]float64, n),
	}}
}

// Insert index i with the given key
func (q *IndexMinPQ) Insert(i int, key float64) {
	q.checkIndex(i)
	if q.Contains(i) {
		panic(fmt.Errorf("%w: index %d is already in the queue", ErrInvalidState, i))
	}
	q.h.keys[i] = key
	heap.Push(&q.h, i)
}

// Check whether index i is in the queue
func (q *IndexMinPQ) Contains(i int) bool {
	q.checkIndex(i)
	return q.h.qp[i] != absent
}

// Get the key of index i
func (q *IndexMinPQ) KeyOf(i int) float64 {
	q.checkPresent(i)
	return q.h.keys[i]
}

// Decrease the key of index i. The new key has to be strictly smaller than the current one.
func (q *IndexMinPQ) DecreaseKey(i int, key float64) {
	q.checkPresent(i)
	if !(key < q.h.keys[i]) {
		panic(fmt.Errorf("%w: key %v of index %d is not smaller than %v", ErrInvalidState, key, i, q.h.keys[i]))
	}
	q.h.keys[i] = key
	heap.Fix(&q.h, q.h.qp[i])
}

// Remove the index with the smallest key and return it
func (q *IndexMinPQ) DelMin() int {
	q.checkNotEmpty()
	return heap.Pop(&q.h).(int)
}

// Get the index with the smallest key, without removing it
func (q *IndexMinPQ) MinIndex() int {
	q.checkNotEmpty()
	return q.h.pq[0]
}

// Get the smallest key
func (q *IndexMinPQ) MinKey() float64 {
	q.checkNotEmpty()
	return q.h.keys[q.h.pq[0]]
}

func (q *IndexMinPQ) IsEmpty() bool { return q.h.Len() == 0 }
func (q *IndexMinPQ) Size() int     { return q.h.Len() }

// Capacity is the exclusive upper bound of the indices
func (q *IndexMinPQ) Capacity() int { return len(q.h.qp) }

// CheckHeap reports whether no key is smaller than the key of its parent
func (q *IndexMinPQ) CheckHeap() bool {
	for k := 1; k < q.h.Len(); k++ {
		if q.h.Less(k, (k-1)/2) {
			return false
		}
	}
	return true
}

func (q *IndexMinPQ) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("size=%d", q.Size()))
	for _, index := range q.h.pq {
		sb.WriteString(fmt.Sprintf(" %d:%v", index, q.h.keys[index]))
	}
	return sb.String()
}

func (q *IndexMinPQ) checkIndex(i int) {
	if i < 0 || i >= len(q.h.qp) {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(q.h.qp)))
	}
}

func (q *IndexMinPQ) checkPresent(i int) {
	if !q.Contains(i) {
		panic(fmt.Errorf("%w: index %d is not in the queue", ErrInvalidState, i))
	}
}

func (q *IndexMinPQ) checkNotEmpty() {
	if q.IsEmpty() {
		panic(fmt.Errorf("%w: queue is empty", ErrInvalidState))
	}
}
