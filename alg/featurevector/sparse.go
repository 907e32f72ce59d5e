package featurevector

import (
	"fmt"
	"sort"
	"strings"
)

// Sparse holds the weights of a single label row, keyed by feature index.
// Zero valued entries are never stored.
type Sparse map[int]float64

func (v Sparse) Copy() Sparse {
	copied := make(Sparse, len(v))
	for k, val := range v {
		copied[k] = val
	}
	return copied
}

// Inc adds amount to the weight of feature, removing the entry if it drops to 0.
func (v Sparse) Inc(feature int, amount float64) {
	val := v[feature] + amount
	if val != 0.0 {
		v[feature] = val
	} else {
		delete(v, feature)
	}
}

// DotProductFeatures sums the weights of the given feature indices; a
// feature index may repeat and is then counted each time.
func (v Sparse) DotProductFeatures(f []int) float64 {
	var result float64
	for _, val := range f {
		result += v[val]
	}
	return result
}

// L1Norm sums the absolute weights of the row.
func (v Sparse) L1Norm() float64 {
	var result float64
	for _, val := range v {
		if val < 0 {
			result -= val
		} else {
			result += val
		}
	}
	return result
}

func (v Sparse) String() string {
	keys := make([]int, 0, len(v))
	for feat := range v {
		keys = append(keys, feat)
	}
	sort.Ints(keys)
	strs := make([]string, len(keys))
	for i, feat := range keys {
		strs[i] = fmt.Sprintf("%v %v", feat, v[feat])
	}
	return strings.Join(strs, "\n")
}

func NewSparse() Sparse {
	return make(Sparse)
}
