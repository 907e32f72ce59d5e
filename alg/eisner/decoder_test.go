package eisner

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/louiezzang/yg-nlp-sub000/alg/graph"
	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

// tableModel scores the single feature "h>m" of an attachment from a
// [head][mod][label] table.
type tableModel struct {
	n       int
	labels  []string
	weights [][][]float64
}

var _ model.Interface = &tableModel{}

func (m *tableModel) Labeled() bool          { return len(m.labels) > 1 }
func (m *tableModel) NumLabels() int         { return len(m.labels) }
func (m *tableModel) Label(index int) string { return m.labels[index] }

func (m *tableModel) Lookup(features []string) []int {
	retval := make([]int, 0, len(features))
	for _, f := range features {
		parts := strings.Split(f, ">")
		h, _ := strconv.Atoi(parts[0])
		mod, _ := strconv.Atoi(parts[1])
		retval = append(retval, h*m.n+mod)
	}
	return retval
}

func (m *tableModel) Score(label int, features []int) float64 {
	var retval float64
	for _, f := range features {
		retval += m.weights[f/m.n][f%m.n][label]
	}
	return retval
}

func arcFeatures(head, mod int) []string {
	return []string{fmt.Sprintf("%d>%d", head, mod)}
}

func randomModel(r *rand.Rand, n int, labels []string) *tableModel {
	m := &tableModel{n: n, labels: labels, weights: make([][][]float64, n)}
	for h := range m.weights {
		m.weights[h] = make([][]float64, n)
		for mod := range m.weights[h] {
			m.weights[h][mod] = make([]float64, len(labels))
			for l := range labels {
				m.weights[h][mod][l] = float64(r.Intn(21) - 10)
			}
		}
	}
	return m
}

// allProjectiveScores enumerates every head assignment of n positions and
// returns the scores of the projective trees, best first.
func allProjectiveScores(m *tableModel, n int) []float64 {
	var (
		scores []float64
		heads  = make([]int, n)
	)
	heads[0] = types.NO_HEAD
	var rec func(pos int)
	rec = func(pos int) {
		if pos == n {
			if graph.CheckTree(heads) != nil || !graph.IsProjective(heads) {
				return
			}
			var score float64
			for mod := 1; mod < n; mod++ {
				_, s := ArgmaxLabel{}.Choose(m, m.Lookup(arcFeatures(heads[mod], mod)))
				score += s
			}
			scores = append(scores, score)
			return
		}
		for h := 0; h < n; h++ {
			if h != pos {
				heads[pos] = h
				rec(pos + 1)
			}
		}
	}
	rec(1)
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores
}

func TestDecodeMatchesExhaustiveSearch(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 2; n <= 6; n++ {
		for _, labels := range [][]string{{model.NO_LABEL}, {"a", "b", "c"}} {
			m := randomModel(r, n, labels)
			expected := allProjectiveScores(m, n)
			for _, k := range []int{1, 2, 5, 8} {
				d := &Decoder{K: k}
				trees := d.Decode(m, n, arcFeatures)
				want := k
				if len(expected) < want {
					want = len(expected)
				}
				if len(trees) != want {
					t.Fatalf("n=%d K=%d: got %d trees expected %d", n, k, len(trees), want)
				}
				seen := make(map[string]bool)
				for i, tree := range trees {
					if score := tree.Score(); math.Abs(score-expected[i]) > 1e-9 {
						t.Errorf("n=%d K=%d labels=%v rank %d: got score %v expected %v", n, k, labels, i, score, expected[i])
					}
					if i > 0 && tree.Score() > trees[i-1].Score() {
						t.Errorf("n=%d K=%d: scores increase at rank %d", n, k, i)
					}
					key := fmt.Sprint(tree.Heads(n))
					if seen[key] {
						t.Errorf("n=%d K=%d: tree %v returned twice", n, k, key)
					}
					seen[key] = true
				}
			}
		}
	}
}

func TestDecodeWellFormedTrees(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	n := 8
	m := randomModel(r, n, []string{"x", "y"})
	trees := (&Decoder{K: 4}).Decode(m, n, arcFeatures)
	if len(trees) != 4 {
		t.Fatalf("Got %d trees expected 4", len(trees))
	}
	for _, tree := range trees {
		if len(tree) != n-1 {
			t.Errorf("Got %d edges expected %d", len(tree), n-1)
		}
		for i, edge := range tree {
			if edge.Modifier == 0 {
				t.Errorf("ROOT attached as modifier in %v", tree)
			}
			if edge.Modifier != i+1 {
				t.Errorf("Edges not ordered by modifier: %v", tree)
			}
			if !edge.HasLabel {
				t.Errorf("Labeled decode produced unlabeled edge %v", edge)
			}
		}
		heads := tree.Heads(n)
		if err := graph.CheckTree(heads); err != nil {
			t.Errorf("Tree %v: %v", heads, err)
		}
		if !graph.IsProjective(heads) {
			t.Errorf("Tree %v is not projective", heads)
		}
	}
}

func TestChartCellsBoundedAndSorted(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	n, k := 6, 3
	m := randomModel(r, n, []string{model.NO_LABEL})
	chart := (&Decoder{K: k}).Fill(m, n, arcFeatures)
	for s := 0; s < n; s++ {
		for e := s; e < n; e++ {
			for d := Left; d <= Right; d++ {
				for c := Open; c <= Closed; c++ {
					scores := chart.Scores(s, e, d, c)
					if len(scores) != k {
						t.Fatalf("Cell holds %d entries expected %d", len(scores), k)
					}
					for i := 1; i < k; i++ {
						if scores[i] > scores[i-1] {
							t.Errorf("Cell (%d,%d,%v,%v) not sorted: %v", s, e, d, c, scores)
						}
					}
				}
			}
		}
	}
	for e := 1; e < n; e++ {
		for _, score := range chart.Scores(0, e, Left, Open) {
			if !math.IsInf(score, -1) {
				t.Errorf("ROOT modifier cell (0,%d) holds %v", e, score)
			}
		}
	}
}

func TestDecodeRootOnly(t *testing.T) {
	m := randomModel(rand.New(rand.NewSource(1)), 1, []string{model.NO_LABEL})
	trees := (&Decoder{K: 3}).Decode(m, 1, arcFeatures)
	if len(trees) != 1 || len(trees[0]) != 0 {
		t.Errorf("Got %v expected a single empty tree", trees)
	}
	if trees := (&Decoder{K: 3}).Decode(m, 0, arcFeatures); trees != nil {
		t.Errorf("Got %v expected no trees", trees)
	}
}

func TestDecodeFewerTreesThanK(t *testing.T) {
	m := randomModel(rand.New(rand.NewSource(5)), 3, []string{model.NO_LABEL})
	// two tokens admit exactly three projective trees
	trees := (&Decoder{K: 8}).Decode(m, 3, arcFeatures)
	if len(trees) != 3 {
		t.Errorf("Got %d trees expected 3", len(trees))
	}
}

func TestArgmaxLabelTies(t *testing.T) {
	m := &tableModel{n: 2, labels: []string{"a", "b", "c"}, weights: [][][]float64{
		{{0, 0, 0}, {1, 4, 4}},
		{{0, 0, 0}, {0, 0, 0}},
	}}
	label, score := ArgmaxLabel{}.Choose(m, m.Lookup(arcFeatures(0, 1)))
	if label != 1 || score != 4 {
		t.Errorf("Got label %d score %v expected 1, 4", label, score)
	}
	tree, ok := (&Decoder{}).Best(m, 2, arcFeatures)
	if !ok || len(tree) != 1 || tree[0].Label != "b" || tree[0].Head != 0 {
		t.Errorf("Got %v expected 0 -b-> 1", tree)
	}
	label, score = FixedLabel{2}.Choose(m, m.Lookup(arcFeatures(0, 1)))
	if label != 2 || score != 4 {
		t.Errorf("Got label %d score %v expected 2, 4", label, score)
	}
}

func TestUnlabeledEdgesCarryNoLabel(t *testing.T) {
	m := randomModel(rand.New(rand.NewSource(9)), 4, []string{model.NO_LABEL})
	tree, ok := (&Decoder{K: 2}).Best(m, 4, arcFeatures)
	if !ok {
		t.Fatal("Expected a tree")
	}
	for _, edge := range tree {
		if edge.HasLabel || edge.Label != "" {
			t.Errorf("Unlabeled decode produced labeled edge %v", edge)
		}
	}
}
