package water

import "container/heap"

// candidate is a queued cell and the potential it had when (re)inserted.
type candidate struct {
	index int
	key   int
}

// candidateHeap is a min-heap on (key, index). pos tracks where every cell
// currently sits so an entry can be fixed in place.
type candidateHeap struct {
	items []candidate
	pos   []int
}

func (h *candidateHeap) Len() int { return len(h.items) }

func (h *candidateHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.index < b.index
}

func (h *candidateHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].index] = i
	h.pos[h.items[j].index] = j
}

func (h *candidateHeap) Push(x any) {
	c := x.(candidate)
	h.pos[c.index] = len(h.items)
	h.items = append(h.items, c)
}

func (h *candidateHeap) Pop() any {
	last := len(h.items) - 1
	c := h.items[last]
	h.items = h.items[:last]
	h.pos[c.index] = -1
	return c
}

// candidateQueue orders plausible targets by ascending potential. Each cell
// appears at most once.
type candidateQueue struct {
	h   candidateHeap
	key func(int) int
}

func newCandidateQueue(n int, key func(int) int) *candidateQueue {
	q := &candidateQueue{key: key}
	q.h.pos = make([]int, n)
	for i := range q.h.pos {
		q.h.pos[i] = -1
	}
	return q
}

func (q *candidateQueue) Len() int { return q.h.Len() }

func (q *candidateQueue) contains(i int) bool { return q.h.pos[i] >= 0 }

func (q *candidateQueue) clear() {
	for _, c := range q.h.items {
		q.h.pos[c.index] = -1
	}
	q.h.items = q.h.items[:0]
}

// fill replaces the contents with indices in O(len(indices)).
func (q *candidateQueue) fill(indices []int) {
	q.clear()
	for _, i := range indices {
		if q.h.pos[i] >= 0 {
			continue
		}
		q.h.pos[i] = len(q.h.items)
		q.h.items = append(q.h.items, candidate{index: i, key: q.key(i)})
	}
	heap.Init(&q.h)
}

// popNext removes and returns the lowest-potential cell.
func (q *candidateQueue) popNext() (int, bool) {
	if q.h.Len() == 0 {
		return -1, false
	}
	c := heap.Pop(&q.h).(candidate)
	return c.index, true
}

// requeue drops any stale entry for i and inserts it at its current
// potential.
func (q *candidateQueue) requeue(i int) {
	if p := q.h.pos[i]; p >= 0 {
		q.h.items[p].key = q.key(i)
		heap.Fix(&q.h, p)
		return
	}
	heap.Push(&q.h, candidate{index: i, key: q.key(i)})
}

// indices returns the queued cells in heap order.
func (q *candidateQueue) indices() []int {
	out := make([]int, len(q.h.items))
	for i, c := range q.h.items {
		out[i] = c.index
	}
	return out
}
