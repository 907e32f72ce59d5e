package graph

import "fmt"

// Children returns, for every position, its dependents in increasing order.
func Children(heads []int) [][]int {
	retval := make([][]int, len(heads))
	for mod := 1; mod < len(heads); mod++ {
		if h := heads[mod]; h >= 0 && h < len(heads) {
			retval[h] = append(retval[h], mod)
		}
	}
	return retval
}

// CheckTree verifies that heads describes a tree rooted at position 0: every
// non-root position has a head in range and following heads always reaches 0.
func CheckTree(heads []int) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(heads))
	if len(heads) > 0 {
		state[0] = done
	}
	for start := 1; start < len(heads); start++ {
		path := make([]int, 0, 4)
		cur := start
		for state[cur] == unvisited {
			state[cur] = visiting
			path = append(path, cur)
			h := heads[cur]
			if h < 0 || h >= len(heads) {
				return fmt.Errorf("position %d has head %d out of range", cur, h)
			}
			cur = h
		}
		if state[cur] == visiting {
			return fmt.Errorf("cycle through position %d", cur)
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

// IsProjective reports whether no two edges of heads cross when drawn above
// the sentence.
func IsProjective(heads []int) bool {
	for m1 := 1; m1 < len(heads); m1++ {
		l1, r1 := span(heads[m1], m1)
		for m2 := m1 + 1; m2 < len(heads); m2++ {
			l2, r2 := span(heads[m2], m2)
			if (l1 < l2 && l2 < r1 && r1 < r2) || (l2 < l1 && l1 < r2 && r2 < r1) {
				return false
			}
		}
	}
	return true
}

func span(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
