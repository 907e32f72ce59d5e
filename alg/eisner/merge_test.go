package eisner

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func sortedScores(r *rand.Rand, n, k int) []float64 {
	retval := make([]float64, k)
	for i := range retval {
		if i < n {
			retval[i] = float64(r.Intn(41) - 20)
		} else {
			retval[i] = math.Inf(-1)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(retval[:n])))
	return retval
}

func bruteForcePairs(a, b []float64, k int) []float64 {
	var sums []float64
	for _, x := range a {
		for _, y := range b {
			if s := x + y; !math.IsInf(s, -1) {
				sums = append(sums, s)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sums)))
	if len(sums) > k {
		sums = sums[:k]
	}
	return sums
}

func TestMergeMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for k := 1; k <= 8; k++ {
		m := newMerger(k)
		for la := 0; la <= k; la++ {
			for lb := 0; lb <= k; lb++ {
				for trial := 0; trial < 5; trial++ {
					a, b := sortedScores(r, la, k), sortedScores(r, lb, k)
					expected := bruteForcePairs(a, b, k)
					pairs := m.Merge(a, b)
					if len(pairs) != len(expected) {
						t.Fatalf("K=%d a=%v b=%v: got %d pairs expected %d", k, a, b, len(pairs), len(expected))
					}
					for i, p := range pairs {
						if p.Score != expected[i] {
							t.Errorf("K=%d a=%v b=%v: pair %d got %v expected %v", k, a, b, i, p.Score, expected[i])
						}
						if p.Score != a[p.I]+b[p.J] {
							t.Errorf("K=%d: pair %v does not sum its indices", k, p)
						}
					}
				}
			}
		}
	}
}

func TestMergeDistinctIndices(t *testing.T) {
	a := []float64{3, 3, 3, 3}
	b := []float64{1, 1, 1, 1}
	pairs := KBestPairs(a, b, 4)
	if len(pairs) != 4 {
		t.Fatalf("Got %d pairs expected 4", len(pairs))
	}
	seen := make(map[[2]int]bool)
	for _, p := range pairs {
		key := [2]int{p.I, p.J}
		if seen[key] {
			t.Errorf("Pair %v emitted twice", key)
		}
		seen[key] = true
		if p.Score != 4 {
			t.Errorf("Got score %v expected 4", p.Score)
		}
	}
}

func TestKBestPairs(t *testing.T) {
	pairs := KBestPairs([]float64{5, 1}, []float64{2, 0, -7}, 3)
	expected := []Pair{{7, 0, 0}, {5, 0, 1}, {3, 1, 0}}
	if len(pairs) != len(expected) {
		t.Fatalf("Got %v expected %v", pairs, expected)
	}
	for i := range expected {
		if pairs[i] != expected[i] {
			t.Errorf("Pair %d: got %v expected %v", i, pairs[i], expected[i])
		}
	}
	if pairs := KBestPairs(nil, []float64{1}, 3); len(pairs) != 0 {
		t.Errorf("Expected no pairs from an empty list, got %v", pairs)
	}
	if pairs := KBestPairs([]float64{1}, []float64{1}, 0); pairs != nil {
		t.Errorf("Expected nil for K=0, got %v", pairs)
	}
}
