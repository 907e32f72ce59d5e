package eisner

import (
	"container/heap"
	"math"
)

// Pair is one sum A[I]+B[J] produced by the K-best pair merge.
type Pair struct {
	Score float64
	I, J  int
}

type pairHeap []Pair

func (h pairHeap) Len() int            { return len(h) }
func (h pairHeap) Less(i, j int) bool  { return h[i].Score > h[j].Score }
func (h pairHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x interface{}) { *h = append(*h, x.(Pair)) }
func (h *pairHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// merger finds the K largest sums of two score-descending lists without
// enumerating every pair. Its buffers are reused across calls.
type merger struct {
	k       int
	agenda  pairHeap
	visited []bool
	out     []Pair
}

func newMerger(k int) *merger {
	return &merger{
		k:       k,
		agenda:  make(pairHeap, 0, 2*k+1),
		visited: make([]bool, k*k),
		out:     make([]Pair, 0, k),
	}
}

// Merge returns up to k pairs in non-increasing score order. Both lists must
// be sorted non-increasingly and hold at most k scores; -Inf marks the end of
// the usable part of a list. The returned slice is only valid until the next call.
func (m *merger) Merge(a, b []float64) []Pair {
	m.out = m.out[:0]
	if len(a) == 0 || len(b) == 0 {
		return m.out
	}
	if m.k == 1 {
		if sum := a[0] + b[0]; !math.IsInf(sum, -1) {
			m.out = append(m.out, Pair{sum, 0, 0})
		}
		return m.out
	}
	for i := range m.visited {
		m.visited[i] = false
	}
	m.agenda = m.agenda[:0]
	heap.Push(&m.agenda, Pair{a[0] + b[0], 0, 0})
	m.visited[0] = true
	for len(m.out) < m.k && m.agenda.Len() > 0 {
		best := heap.Pop(&m.agenda).(Pair)
		if math.IsInf(best.Score, -1) {
			break
		}
		m.out = append(m.out, best)
		if i := best.I + 1; i < len(a) && !m.visited[i*m.k+best.J] {
			m.visited[i*m.k+best.J] = true
			heap.Push(&m.agenda, Pair{a[i] + b[best.J], i, best.J})
		}
		if j := best.J + 1; j < len(b) && !m.visited[best.I*m.k+j] {
			m.visited[best.I*m.k+j] = true
			heap.Push(&m.agenda, Pair{a[best.I] + b[j], best.I, j})
		}
	}
	return m.out
}

// KBestPairs returns the k largest sums a[i]+b[j] of two score-descending
// lists of length at most k.
func KBestPairs(a, b []float64, k int) []Pair {
	if k <= 0 {
		return nil
	}
	if len(a) > k {
		a = a[:k]
	}
	if len(b) > k {
		b = b[:k]
	}
	pairs := newMerger(k).Merge(a, b)
	retval := make([]Pair, len(pairs))
	copy(retval, pairs)
	return retval
}
