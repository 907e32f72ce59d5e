package model

import (
	"fmt"
	"log"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/alg/featurevector"
	"github.com/louiezzang/yg-nlp-sub000/util"
)

const (
	APPROX_LABELS   = 64
	APPROX_FEATURES = 1 << 16
)

// MatrixSparse is the mutable accumulating model used during training: one
// sparse row per label, and symbol tables that grow as weights are added.
type MatrixSparse struct {
	Labels, Features *util.EnumSet
	Mat              []featurevector.Sparse
	IsLabeled        bool
	Log              bool
}

var _ Interface = &MatrixSparse{}

func (t *MatrixSparse) Labeled() bool {
	return t.IsLabeled
}

func (t *MatrixSparse) NumLabels() int {
	return t.Labels.Len()
}

func (t *MatrixSparse) Label(index int) string {
	return t.Labels.ValueOf(index)
}

func (t *MatrixSparse) Lookup(features []string) []int {
	retval := make([]int, 0, len(features))
	for _, feat := range features {
		if i, exists := t.Features.IndexOf(feat); exists {
			retval = append(retval, i)
		}
	}
	return retval
}

func (t *MatrixSparse) Score(label int, features []int) float64 {
	if label < 0 || label >= len(t.Mat) {
		return 0
	}
	return t.Mat[label].DotProductFeatures(features)
}

// ScoreFeatures scores raw feature identifiers under a label name without
// registering anything.
func (t *MatrixSparse) ScoreFeatures(label string, features []string) float64 {
	i, exists := t.labelIndex(label)
	if !exists {
		return 0
	}
	return t.Score(i, t.Lookup(features))
}

func (t *MatrixSparse) labelIndex(label string) (int, bool) {
	if !t.IsLabeled {
		return 0, true
	}
	return t.Labels.IndexOf(label)
}

// RegisterLabel adds label to the label table without touching any weight.
func (t *MatrixSparse) RegisterLabel(label string) int {
	if !t.IsLabeled {
		return 0
	}
	i, _ := t.Labels.Add(label)
	for len(t.Mat) <= i {
		t.Mat = append(t.Mat, featurevector.NewSparse())
	}
	return i
}

// AddWeight accumulates delta onto (label, feature), registering both if
// unseen. In unlabeled mode the label is ignored.
func (t *MatrixSparse) AddWeight(label, feature string, delta float64) {
	labelIndex := t.RegisterLabel(label)
	featIndex, _ := t.Features.Add(feature)
	t.Mat[labelIndex].Inc(featIndex, delta)
}

// Update applies AddWeight for every feature of an edge.
func (t *MatrixSparse) Update(label string, features []string, delta float64) {
	if t.Log {
		log.Println("Score", delta, "to", label, "for", len(features), "features")
	}
	for _, feat := range features {
		t.AddWeight(label, feat, delta)
	}
}

// Dense materializes the accumulator as is.
func (t *MatrixSparse) Dense() *Dense {
	dense := NewDense(t.Labels.Copy(), t.Features.Copy(), t.IsLabeled)
	numLabels := dense.NumLabels()
	for label, row := range t.Mat {
		for feat, val := range row {
			dense.Weights[feat*numLabels+label] = val
		}
	}
	return dense
}

// Averaged materializes the accumulator with every cell divided by
// samples*iterations. The accumulator itself is left untouched.
func (t *MatrixSparse) Averaged(samples, iterations int) *Dense {
	if samples <= 0 || iterations <= 0 {
		panic(fmt.Sprintf("Cannot average over %d samples and %d iterations", samples, iterations))
	}
	dense := t.Dense()
	dense.ScalarDivide(float64(samples * iterations))
	return dense
}

// L1Norm sums the absolute accumulated weights over all labels.
func (t *MatrixSparse) L1Norm() float64 {
	var norm float64
	for _, row := range t.Mat {
		norm += row.L1Norm()
	}
	return norm
}

func (t *MatrixSparse) String() string {
	retval := make([]string, len(t.Mat))
	for i, val := range t.Mat {
		retval[i] = fmt.Sprintf("%v\n%s", t.Labels.ValueOf(i), val.String())
	}
	return strings.Join(retval, "\n")
}

func NewMatrixSparse(labeled bool) *MatrixSparse {
	m := &MatrixSparse{
		Labels:    util.NewEnumSet(APPROX_LABELS),
		Features:  util.NewEnumSet(APPROX_FEATURES),
		IsLabeled: labeled,
	}
	if !labeled {
		m.Labels.Add(NO_LABEL)
		m.Mat = []featurevector.Sparse{featurevector.NewSparse()}
	}
	return m
}
