package graph

import (
	"reflect"
	"testing"
)

func TestChildren(t *testing.T) {
	heads := []int{-1, 2, 0, 2, 3}
	expected := [][]int{{2}, nil, {1, 3}, {4}, nil}
	if children := Children(heads); !reflect.DeepEqual(children, expected) {
		t.Errorf("Got %v expected %v", children, expected)
	}
}

func TestCheckTree(t *testing.T) {
	cases := []struct {
		heads []int
		valid bool
	}{
		{[]int{-1}, true},
		{[]int{-1, 0}, true},
		{[]int{-1, 2, 0}, true},
		{[]int{-1, 2, 0, 2, 3}, true},
		{[]int{-1, 2, 1}, false},
		{[]int{-1, 1}, false},
		{[]int{-1, 5}, false},
		{[]int{-1, 0, 3, 2}, false},
	}
	for _, c := range cases {
		err := CheckTree(c.heads)
		if (err == nil) != c.valid {
			t.Errorf("Heads %v: got error %v, expected valid=%v", c.heads, err, c.valid)
		}
	}
}

func TestIsProjective(t *testing.T) {
	cases := []struct {
		heads      []int
		projective bool
	}{
		{[]int{-1, 2, 0}, true},
		{[]int{-1, 2, 0, 2, 3}, true},
		// 1 <- 3 crosses 2 <- 4
		{[]int{-1, 3, 4, 0, 3}, false},
		{[]int{-1, 0, 1, 1, 1}, true},
		{[]int{-1, 0, 4, 1, 1}, false},
	}
	for _, c := range cases {
		if got := IsProjective(c.heads); got != c.projective {
			t.Errorf("Heads %v: got %v expected %v", c.heads, got, c.projective)
		}
	}
}

func TestEdges(t *testing.T) {
	edges := Edges([]int{-1, 2, 0})
	expected := []BasicDirectedEdge{{2, 1}, {0, 2}}
	if !reflect.DeepEqual(edges, expected) {
		t.Errorf("Got %v expected %v", edges, expected)
	}
}

func TestHeads(t *testing.T) {
	edges := []BasicDirectedEdge{{0, 2}, {2, 1}, {1, 7}}
	if heads := Heads(3, edges); !reflect.DeepEqual(heads, []int{-1, 2, 0}) {
		t.Errorf("Got %v expected [-1 2 0]", heads)
	}
	if heads := Heads(3, Edges([]int{-1, 2, 0})); !reflect.DeepEqual(heads, []int{-1, 2, 0}) {
		t.Errorf("Round trip gave %v", heads)
	}
}
