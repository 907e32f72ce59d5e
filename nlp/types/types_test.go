package types

import (
	"errors"
	"reflect"
	"testing"
)

func dogBarks() *Sample {
	tokens := []Token{
		{Form: "dog", Lemma: "dog", CPOS: "N", POS: "NN"},
		{Form: "barks", Lemma: "bark", CPOS: "V", POS: "VBZ"},
	}
	return NewSample(tokens, []int{2, 0}, []string{"nsubj", "root"})
}

func TestNewSample(t *testing.T) {
	s := dogBarks()
	if s.Len() != 3 {
		t.Fatalf("Got length %d expected 3", s.Len())
	}
	if s.Tokens[0] != RootToken() {
		t.Errorf("Got %v at position 0", s.Tokens[0])
	}
	if !reflect.DeepEqual(s.Heads, []int{NO_HEAD, 2, 0}) {
		t.Errorf("Got heads %v", s.Heads)
	}
	if !reflect.DeepEqual(s.Labels, []string{ROOT_LABEL, "nsubj", "root"}) {
		t.Errorf("Got labels %v", s.Labels)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Unexpected error %v", err)
	}
	untagged := NewSample(s.Tokens[1:], nil, nil)
	if untagged.HasHeads() || untagged.HasLabels() {
		t.Error("Expected an untagged sample")
	}
	if _, err := untagged.Gold(); !errors.Is(err, ErrNoHeads) {
		t.Errorf("Expected ErrNoHeads, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tokens := dogBarks().Tokens[1:]
	cases := map[string]*Sample{
		"no tokens":   &Sample{},
		"short heads": &Sample{Tokens: dogBarks().Tokens, Heads: []int{NO_HEAD, 2}},
		"range":       NewSample(tokens, []int{3, 0}, nil),
		"self":        NewSample(tokens, []int{1, 0}, nil),
		"cycle":       NewSample(tokens, []int{2, 1}, nil),
		"labels only": &Sample{Tokens: dogBarks().Tokens, Labels: []string{"a", "b", "c"}},
		"short":       NewSample(tokens, []int{2, 0}, []string{"nsubj"}),
	}
	for name, s := range cases {
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestGold(t *testing.T) {
	gold, err := dogBarks().Gold()
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}
	expected := Tree{
		{Head: 2, Modifier: 1, Label: "nsubj", HasLabel: true, GoldHead: 2, GoldLabel: "nsubj", Correct: true},
		{Head: 0, Modifier: 2, Label: "root", HasLabel: true, GoldHead: 0, GoldLabel: "root", Correct: true},
	}
	if !reflect.DeepEqual(gold, expected) {
		t.Errorf("Got %v expected %v", gold, expected)
	}
	if !reflect.DeepEqual(gold.Heads(3), []int{NO_HEAD, 2, 0}) {
		t.Errorf("Got heads %v", gold.Heads(3))
	}
}

func TestWithTree(t *testing.T) {
	s := dogBarks()
	tree := Tree{{Head: 0, Modifier: 1, Score: 1}, {Head: 1, Modifier: 2, Score: 0.5}}
	parsed := s.WithTree(tree)
	if !reflect.DeepEqual(parsed.Heads, []int{NO_HEAD, 0, 1}) {
		t.Errorf("Got heads %v", parsed.Heads)
	}
	if parsed.HasLabels() {
		t.Errorf("Unlabeled tree gave labels %v", parsed.Labels)
	}
	if !reflect.DeepEqual(s.Heads, []int{NO_HEAD, 2, 0}) {
		t.Errorf("Original sample changed: %v", s.Heads)
	}
	if tree.Score() != 1.5 {
		t.Errorf("Got score %v expected 1.5", tree.Score())
	}
}

func TestEdgeCompare(t *testing.T) {
	edge := Edge{Head: 2, Modifier: 1, Label: "nsubj", HasLabel: true}
	if !edge.Compare(2, "nsubj") || !edge.Correct {
		t.Error("Expected a correct edge")
	}
	if edge.Compare(2, "obj") {
		t.Error("Label mismatch should be incorrect")
	}
	unlabeled := Edge{Head: 2, Modifier: 1}
	if !unlabeled.Compare(2, "obj") {
		t.Error("Unlabeled edges ignore the gold label")
	}
	if unlabeled.GoldLabel != "obj" || unlabeled.GoldHead != 2 {
		t.Errorf("Gold fields not filled: %+v", unlabeled)
	}
}

func TestTreeEqualAndSort(t *testing.T) {
	a := Tree{{Head: 0, Modifier: 2, Score: 3}, {Head: 2, Modifier: 1, Score: 1}}
	b := Tree{{Head: 2, Modifier: 1}, {Head: 0, Modifier: 2}}
	if a.Equal(b) {
		t.Error("Unsorted trees compared equal")
	}
	a.Sort()
	if !a.Equal(b) {
		t.Errorf("Expected %v to equal %v", a, b)
	}
	b[0].Label = "x"
	if a.Equal(b) {
		t.Error("Labels should be compared")
	}
}
