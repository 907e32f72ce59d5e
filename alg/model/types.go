package model

// NO_LABEL is the single pseudo-label every weight is filed under when
// parsing is unlabeled.
const NO_LABEL = "_"

// Interface is the read-only view of a scoring model used while decoding.
// Features are looked up once per edge with Lookup and then scored against
// any number of labels.
type Interface interface {
	Labeled() bool
	NumLabels() int
	Label(index int) string
	// Lookup maps feature identifiers to their indices; identifiers the
	// model has never registered are dropped and so score 0.
	Lookup(features []string) []int
	Score(label int, features []int) float64
}
