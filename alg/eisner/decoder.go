package eisner

import (
	"math"

	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

// Decoder finds the K best projective trees of a sentence under a first-order
// (arc-factored) model. Position 0 is ROOT and is never a modifier.
type Decoder struct {
	K int
	// Chooser overrides the label strategy; when nil it follows the model's
	// mode (ArgmaxLabel when labeled, FixedLabel{0} otherwise).
	Chooser EdgeChooser
}

func (d *Decoder) k() int {
	if d.K < 1 {
		return 1
	}
	return d.K
}

// Fill builds the chart of a sentence of n positions (ROOT included).
// features is called once per ordered (head, modifier) pair.
func (d *Decoder) Fill(m model.Interface, n int, features types.FeatureFunc) *Chart {
	if m == nil {
		panic("Decoder requires a model")
	}
	chooser := d.Chooser
	if chooser == nil {
		chooser = ChooserFor(m)
	}
	var (
		k      = d.k()
		chart  = NewChart(n, k)
		merge  = newMerger(k)
		labels = m.Labeled()
	)
	attach := func(head, mod int) (int32, float64) {
		feats := features(head, mod)
		label, score := chooser.Choose(m, m.Lookup(feats))
		edge := types.Edge{
			Head:     head,
			Modifier: mod,
			Score:    score,
			Features: feats,
			GoldHead: types.NO_HEAD,
		}
		if labels && label >= 0 {
			edge.Label = m.Label(label)
			edge.HasLabel = true
		}
		return chart.addEdge(edge), score
	}
	for span := 1; span < n; span++ {
		for s := 0; s+span < n; s++ {
			t := s + span

			// open items: head t takes s (left), head s takes t (right)
			rightEdge, rightScore := attach(s, t)
			var (
				leftEdge  = none
				leftScore = math.Inf(-1)
			)
			if s != 0 {
				leftEdge, leftScore = attach(t, s)
			}
			leftOpen, rightOpen := chart.cell(s, t, Left, Open), chart.cell(s, t, Right, Open)
			for r := s; r < t; r++ {
				a, b := chart.cell(s, r, Right, Closed), chart.cell(r+1, t, Left, Closed)
				for _, p := range merge.Merge(chart.scores[a:a+k], chart.scores[b:b+k]) {
					left, right := int32(a+p.I), int32(b+p.J)
					if leftEdge != none {
						chart.add(leftOpen, p.Score+leftScore, backpointer{leftEdge, left, right})
					}
					chart.add(rightOpen, p.Score+rightScore, backpointer{rightEdge, left, right})
				}
			}

			// closed items
			leftClosed := chart.cell(s, t, Left, Closed)
			for r := s; r < t; r++ {
				a, b := chart.cell(s, r, Left, Closed), chart.cell(r, t, Left, Open)
				for _, p := range merge.Merge(chart.scores[a:a+k], chart.scores[b:b+k]) {
					chart.add(leftClosed, p.Score, backpointer{none, int32(a + p.I), int32(b + p.J)})
				}
			}
			rightClosed := chart.cell(s, t, Right, Closed)
			for r := s + 1; r <= t; r++ {
				a, b := chart.cell(s, r, Right, Open), chart.cell(r, t, Right, Closed)
				for _, p := range merge.Merge(chart.scores[a:a+k], chart.scores[b:b+k]) {
					chart.add(rightClosed, p.Score, backpointer{none, int32(a + p.I), int32(b + p.J)})
				}
			}
		}
	}
	return chart
}

// Decode returns up to K trees in non-increasing score order. Each tree holds
// one edge per non-ROOT position, ordered by modifier. A sentence holding
// only ROOT yields a single empty tree.
func (d *Decoder) Decode(m model.Interface, n int, features types.FeatureFunc) []types.Tree {
	if n <= 0 {
		return nil
	}
	return d.Fill(m, n, features).Trees()
}

// Best returns the highest scoring tree, decoding with K=1 regardless of the
// decoder's K.
func (d *Decoder) Best(m model.Interface, n int, features types.FeatureFunc) (types.Tree, bool) {
	if n <= 0 {
		return nil, false
	}
	best := &Decoder{K: 1, Chooser: d.Chooser}
	return best.Fill(m, n, features).Tree(0)
}
