package queue

// absent marks an index which is not in the heap
const absent = -1

// indexHeap implements heap.Interface for the indices of an IndexMinPQ.
// The heap only stores indices, their keys live in a table addressed by the index.
type indexHeap struct {
	pq   []int     // heap position -> index
	qp   []int     // index -> heap position (absent if not in the heap)
	keys []float64 // index -> key
}

func (h *indexHeap) Len() int { return len(h.pq) }

// Equal keys compare as not less, so they are never exchanged
func (h *indexHeap) Less(i, j int) bool { return h.keys[h.pq[i]] < h.keys[h.pq[j]] }

func (h *indexHeap) Swap(i, j int) {
	h.pq[i], h.pq[j] = h.pq[j], h.pq[i]
	h.qp[h.pq[i]] = i
	h.qp[h.pq[j]] = j
}

func (h *indexHeap) Push(x any) {
	index := x.(int)
	h.qp[index] = len(h.pq)
	h.pq = append(h.pq, index)
}

func (h *indexHeap) Pop() any {
	n := len(h.pq)
	index := h.pq[n-1]
	h.pq = h.pq[:n-1]
	h.qp[index] = absent
	return index
}
