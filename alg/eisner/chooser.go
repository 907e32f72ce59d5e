package eisner

import "github.com/louiezzang/yg-nlp-sub000/alg/model"

// EdgeChooser decides the label of a single (head, modifier) attachment from
// its looked-up features, returning the label index and the local score. A
// negative label index means the edge carries no label.
type EdgeChooser interface {
	Choose(m model.Interface, features []int) (label int, score float64)
}

// ArgmaxLabel keeps the best scoring registered label, the lowest index
// winning ties. The choice is local to the edge and is never revisited by
// the tree search.
type ArgmaxLabel struct{}

var _ EdgeChooser = ArgmaxLabel{}

func (ArgmaxLabel) Choose(m model.Interface, features []int) (int, float64) {
	var (
		best      = -1
		bestScore float64
	)
	for l := 0; l < m.NumLabels(); l++ {
		score := m.Score(l, features)
		if best < 0 || score > bestScore {
			best, bestScore = l, score
		}
	}
	return best, bestScore
}

// FixedLabel scores every edge under a single label, as unlabeled parsing does
// with label 0.
type FixedLabel struct {
	Label int
}

var _ EdgeChooser = FixedLabel{}

func (f FixedLabel) Choose(m model.Interface, features []int) (int, float64) {
	return f.Label, m.Score(f.Label, features)
}

// ChooserFor returns the chooser matching the model's mode.
func ChooserFor(m model.Interface) EdgeChooser {
	if m.Labeled() {
		return ArgmaxLabel{}
	}
	return FixedLabel{0}
}
