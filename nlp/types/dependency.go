package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/alg/graph"
	"github.com/louiezzang/yg-nlp-sub000/util"
)

// Edge is a scored candidate attachment of Modifier to Head.
type Edge struct {
	Head, Modifier int
	Label          string
	HasLabel       bool
	Score          float64
	Features       []string

	GoldHead  int
	GoldLabel string
	Correct   bool
}

var _ graph.DirectedEdge = Edge{}

func (e Edge) GetHead() int {
	return e.Head
}

func (e Edge) GetModifier() int {
	return e.Modifier
}

// Compare fills the gold fields of the edge and returns whether it is correct.
// Labels are only compared when the edge is labeled.
func (e *Edge) Compare(goldHead int, goldLabel string) bool {
	e.GoldHead, e.GoldLabel = goldHead, goldLabel
	e.Correct = e.Head == goldHead && (!e.HasLabel || e.Label == goldLabel)
	return e.Correct
}

func (e Edge) String() string {
	if e.HasLabel {
		return fmt.Sprintf("(%d <-%s- %d : %g)", e.Modifier, e.Label, e.Head, e.Score)
	}
	return fmt.Sprintf("(%d <- %d : %g)", e.Modifier, e.Head, e.Score)
}

// Tree is a full dependency tree, one edge per non-ROOT token.
type Tree []Edge

var _ util.Equaler = Tree{}

func (t Tree) Len() int           { return len(t) }
func (t Tree) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }
func (t Tree) Less(i, j int) bool { return t[i].Modifier < t[j].Modifier }

// Sort orders the edges by modifier position.
func (t Tree) Sort() {
	sort.Sort(t)
}

// Heads returns the head array of the tree for a sentence of n positions.
func (t Tree) Heads(n int) []int {
	return graph.Heads(n, t)
}

// Score sums the local scores of the edges.
func (t Tree) Score() float64 {
	var retval float64
	for _, edge := range t {
		retval += edge.Score
	}
	return retval
}

// Equal compares attachments and labels, ignoring scores and features.
func (t Tree) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(Tree)
	if !ok || len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i].Head != other[i].Head ||
			t[i].Modifier != other[i].Modifier ||
			t[i].Label != other[i].Label {
			return false
		}
	}
	return true
}

func (t Tree) String() string {
	strs := make([]string, len(t))
	for i, edge := range t {
		strs[i] = edge.String()
	}
	return strings.Join(strs, " ")
}
