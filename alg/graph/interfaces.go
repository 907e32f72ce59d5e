package graph

// DirectedEdge is an attachment of a modifier to its head.
type DirectedEdge interface {
	GetHead() int
	GetModifier() int
}

// BasicDirectedEdge is a {head, modifier} pair.
type BasicDirectedEdge [2]int

var _ DirectedEdge = BasicDirectedEdge{}

func (e BasicDirectedEdge) GetHead() int {
	return e[0]
}

func (e BasicDirectedEdge) GetModifier() int {
	return e[1]
}

// Edges converts a head array into its edges; position 0 is skipped.
func Edges(heads []int) []BasicDirectedEdge {
	if len(heads) == 0 {
		return nil
	}
	retval := make([]BasicDirectedEdge, 0, len(heads)-1)
	for mod := 1; mod < len(heads); mod++ {
		retval = append(retval, BasicDirectedEdge{heads[mod], mod})
	}
	return retval
}

// Heads converts edges into the head array of a graph of n positions.
// Positions without an edge, and edges out of range, are left at -1.
func Heads[E DirectedEdge](n int, edges []E) []int {
	heads := make([]int, n)
	for i := range heads {
		heads[i] = -1
	}
	for _, edge := range edges {
		if mod := edge.GetModifier(); mod >= 0 && mod < n {
			heads[mod] = edge.GetHead()
		}
	}
	return heads
}
