// Package combinatorics provides choose (unordered subset) and ordered-choose
// (k-permutation) generators over {0,...,n-1}, each returning every result as
// a row of one contiguous arena.FixedRows. Each call allocates that buffer
// itself; the generators do not write into a buffer supplied by the caller.
//
// These mirror original_source/impl/utils.c's choose/ordered_choose and
// do_choose/do_ordered_choose: the count functions are pure arithmetic, and
// the generators enumerate results in lexicographic order.
package combinatorics

import "github.com/fibergraph/fiberlab/internal/arena"

// Choose returns C(n,k), the number of k-element subsets of an n-element
// set. Returns 0 for k < 0 or k > n.
func Choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}

	return result
}

// OrderedChoose returns the number of ways to pick an ordered sequence of k
// distinct elements from an n-element set, i.e. n!/(n-k)!.
func OrderedChoose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}

	result := 1
	for i := 0; i < k; i++ {
		result *= n - i
	}

	return result
}

// AllSubsets enumerates every k-element subset of {0,...,n-1}, in ascending
// lexicographic order, as rows of an arena.FixedRows with row width k. The
// returned buffer has exactly Choose(n,k) rows.
func AllSubsets(n, k int) *arena.FixedRows {
	count := Choose(n, k)
	result := arena.NewFixedRows(k, count)

	if k == 0 {
		result.AppendRow([]int{})
		return result
	}
	if k > n {
		return result
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		result.AppendRow(idx)

		// advance to the next combination, lexicographically
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return result
}

// AllOrderedSelections enumerates every ordered sequence of k distinct
// elements from {0,...,n-1}, in lexicographic order, as rows of an
// arena.FixedRows with row width k. The returned buffer has exactly
// OrderedChoose(n,k) rows.
func AllOrderedSelections(n, k int) *arena.FixedRows {
	count := OrderedChoose(n, k)
	result := arena.NewFixedRows(k, count)

	if k == 0 {
		result.AppendRow([]int{})
		return result
	}
	if k > n {
		return result
	}

	used := make([]bool, n)
	current := make([]int, k)

	var recurse func(level int)
	recurse = func(level int) {
		if level == k {
			result.AppendRow(current)
			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			current[level] = v
			recurse(level + 1)
			used[v] = false
		}
	}
	recurse(0)

	return result
}
