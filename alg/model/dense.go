package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/util"
)

// Dense is the trained, read-only model: a [features x labels] matrix stored
// row major, where the row order follows the feature table and the column
// order follows the label table.
type Dense struct {
	Labels, Features *util.EnumSet
	Weights          []float64
	IsLabeled        bool
}

var _ Interface = &Dense{}

func (d *Dense) Labeled() bool {
	return d.IsLabeled
}

func (d *Dense) NumLabels() int {
	return d.Labels.Len()
}

func (d *Dense) NumFeatures() int {
	return d.Features.Len()
}

func (d *Dense) Label(index int) string {
	return d.Labels.ValueOf(index)
}

func (d *Dense) Lookup(features []string) []int {
	retval := make([]int, 0, len(features))
	for _, feat := range features {
		if i, exists := d.Features.IndexOf(feat); exists {
			retval = append(retval, i)
		}
	}
	return retval
}

func (d *Dense) Score(label int, features []int) float64 {
	var (
		retval    float64
		numLabels = d.NumLabels()
	)
	if label < 0 || label >= numLabels {
		return 0
	}
	for _, feat := range features {
		retval += d.Weights[feat*numLabels+label]
	}
	return retval
}

func (d *Dense) Weight(label, feature int) float64 {
	return d.Weights[feature*d.NumLabels()+label]
}

// WeightOf returns the weight of named label and feature, 0 if either is unknown.
func (d *Dense) WeightOf(label, feature string) float64 {
	l, exists := 0, true
	if d.IsLabeled {
		l, exists = d.Labels.IndexOf(label)
	}
	if !exists {
		return 0
	}
	f, exists := d.Features.IndexOf(feature)
	if !exists {
		return 0
	}
	return d.Weight(l, f)
}

func (d *Dense) ScalarDivide(val float64) {
	if val == 0 {
		panic("Divide by 0")
	}
	for i, w := range d.Weights {
		d.Weights[i] = w / val
	}
}

// Validate checks that the matrix matches the symbol tables, as required
// after deserialization.
func (d *Dense) Validate() error {
	if d.Labels == nil || d.Features == nil {
		return fmt.Errorf("model is missing its symbol tables")
	}
	if d.Labels.Len() == 0 {
		return fmt.Errorf("model has an empty label table")
	}
	if expected := d.Labels.Len() * d.Features.Len(); len(d.Weights) != expected {
		return fmt.Errorf("model has %d weights, expected %d labels x %d features = %d",
			len(d.Weights), d.Labels.Len(), d.Features.Len(), expected)
	}
	return nil
}

// WriteText writes the label table, the feature table and the full weight
// matrix in a human readable form. It is not meant to be read back.
func (d *Dense) WriteText(writer io.Writer) error {
	w := bufio.NewWriter(writer)
	fmt.Fprintf(w, "# labeled: %v\n", d.IsLabeled)
	fmt.Fprintf(w, "# labels: %d\n", d.NumLabels())
	if err := d.Labels.Write(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "# features: %d\n", d.NumFeatures())
	if err := d.Features.Write(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "# weights: feature x label\n")
	numLabels := d.NumLabels()
	row := make([]string, numLabels)
	for f := 0; f < d.NumFeatures(); f++ {
		for l := 0; l < numLabels; l++ {
			row[l] = fmt.Sprintf("%g", d.Weights[f*numLabels+l])
		}
		fmt.Fprintf(w, "%d\t%s\n", f, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (d *Dense) String() string {
	var b strings.Builder
	d.WriteText(&b)
	return b.String()
}

func NewDense(labels, features *util.EnumSet, labeled bool) *Dense {
	return &Dense{
		Labels:    labels,
		Features:  features,
		Weights:   make([]float64, labels.Len()*features.Len()),
		IsLabeled: labeled,
	}
}
