package eisner

import (
	"fmt"
	"math"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

// Direction tells which endpoint of a span is the head: Left items are headed
// by their right endpoint t (the arc points left), Right items by their left
// endpoint s.
type Direction int

const (
	Left Direction = iota
	Right
)

// Completeness tells whether an item still takes dependents (Open) or is sealed.
type Completeness int

const (
	Open Completeness = iota
	Closed
)

var (
	directionNames    = [2]string{"left", "right"}
	completenessNames = [2]string{"open", "closed"}
)

func (d Direction) String() string    { return directionNames[d] }
func (c Completeness) String() string { return completenessNames[c] }

const none int32 = -1

// backpointer holds arena indices: edge into the chart's edges, left and
// right into the chart's entries.
type backpointer struct {
	edge, left, right int32
}

// Chart is the K-best parse forest of a single sentence. Every cell
// (s, t, direction, completeness) owns K consecutive entries of one flat
// arena; entries reference their sub-items and edges by index only, so the
// whole chart is released at once.
type Chart struct {
	N, K   int
	scores []float64
	back   []backpointer
	edges  []types.Edge
}

// NewChart allocates the chart of a sentence of n positions (ROOT included)
// and initializes the single-position base cells.
func NewChart(n, k int) *Chart {
	if k < 1 {
		panic(fmt.Sprintf("K must be positive, got %d", k))
	}
	size := n * n * 2 * 2 * k
	c := &Chart{
		N:      n,
		K:      k,
		scores: make([]float64, size),
		back:   make([]backpointer, size),
		edges:  make([]types.Edge, 0, n*(n-1)+1),
	}
	negInf := math.Inf(-1)
	for i := range c.scores {
		c.scores[i] = negInf
		c.back[i] = backpointer{none, none, none}
	}
	for s := 0; s < n; s++ {
		for d := Left; d <= Right; d++ {
			for comp := Open; comp <= Closed; comp++ {
				c.scores[c.cell(s, s, d, comp)] = 0
			}
		}
	}
	return c
}

func (c *Chart) cell(s, t int, d Direction, comp Completeness) int {
	return (((s*c.N+t)*2+int(d))*2 + int(comp)) * c.K
}

// Scores returns the K scores of a cell in rank order; unfilled ranks are -Inf.
func (c *Chart) Scores(s, t int, d Direction, comp Completeness) []float64 {
	off := c.cell(s, t, d, comp)
	return c.scores[off : off+c.K]
}

// Edge returns the edge attached by the given entry of an open cell.
func (c *Chart) Edge(s, t int, d Direction, comp Completeness, rank int) (types.Edge, bool) {
	bp := c.back[c.cell(s, t, d, comp)+rank]
	if bp.edge == none {
		return types.Edge{}, false
	}
	return c.edges[bp.edge], true
}

func (c *Chart) addEdge(e types.Edge) int32 {
	c.edges = append(c.edges, e)
	return int32(len(c.edges) - 1)
}

// add inserts an entry into the bounded, rank ordered list starting at off.
// Entries that do not beat the current K-th best are dropped, which also
// rejects -Inf.
func (c *Chart) add(off int, score float64, bp backpointer) bool {
	pos := 0
	for pos < c.K && !(score > c.scores[off+pos]) {
		pos++
	}
	if pos == c.K {
		return false
	}
	copy(c.scores[off+pos+1:off+c.K], c.scores[off+pos:off+c.K-1])
	copy(c.back[off+pos+1:off+c.K], c.back[off+pos:off+c.K-1])
	c.scores[off+pos] = score
	c.back[off+pos] = bp
	return true
}

// Top returns the scores of the cell holding complete trees.
func (c *Chart) Top() []float64 {
	if c.N == 0 {
		return nil
	}
	return c.Scores(0, c.N-1, Right, Closed)
}

// Tree extracts the tree of the given rank of the top cell, ordered by
// modifier. It reports false when that rank was never filled.
func (c *Chart) Tree(rank int) (types.Tree, bool) {
	if c.N == 0 || rank < 0 || rank >= c.K {
		return nil, false
	}
	off := c.cell(0, c.N-1, Right, Closed) + rank
	if math.IsInf(c.scores[off], -1) {
		return nil, false
	}
	tree := make(types.Tree, 0, c.N-1)
	tree = c.collect(int32(off), tree)
	tree.Sort()
	return tree, true
}

func (c *Chart) collect(entry int32, tree types.Tree) types.Tree {
	bp := c.back[entry]
	if bp.edge != none {
		tree = append(tree, c.edges[bp.edge])
	}
	if bp.left != none {
		tree = c.collect(bp.left, tree)
	}
	if bp.right != none {
		tree = c.collect(bp.right, tree)
	}
	return tree
}

// Trees extracts every filled rank of the top cell, best first.
func (c *Chart) Trees() []types.Tree {
	retval := make([]types.Tree, 0, c.K)
	for k := 0; k < c.K; k++ {
		tree, ok := c.Tree(k)
		if !ok {
			break
		}
		retval = append(retval, tree)
	}
	return retval
}
