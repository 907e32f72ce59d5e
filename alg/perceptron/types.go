package perceptron

import (
	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

// Model is the weight accumulator owned by the trainer. The decoder only ever
// sees it through its read-only model.Interface.
type Model interface {
	model.Interface
	Update(label string, features []string, delta float64)
	Dense() *model.Dense
	Averaged(samples, iterations int) *model.Dense
}

var _ Model = &model.MatrixSparse{}

// Instance is a training sentence: its length (ROOT included), the feature
// function of its attachments and its gold tree.
type Instance interface {
	Len() int
	Features(head, mod int) []string
	Gold() (types.Tree, error)
}

// InstanceDecoder finds the best tree of a sentence under the current weights.
type InstanceDecoder interface {
	Best(m model.Interface, n int, features types.FeatureFunc) (types.Tree, bool)
}

type SupervisedTrainer interface {
	Train(instances []Instance) (*model.Dense, error)
}
