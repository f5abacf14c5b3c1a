package coloring

import (
	"sort"

	"github.com/fibergraph/fiberlab/automorphism"
	"github.com/fibergraph/fiberlab/graph"
)

// Reduce canonicalizes every coloring in cols under the combined action of
// color relabeling and graph automorphism, then sorts and dedupes, so that
// the result contains exactly one representative per equivalence class.
//
// Ported from original_source/impl/coloring.c's reduce_colorings: the
// earlier root-level original_source/coloring.c took a different approach
// (is_color_permutation_iso, an asymmetric pairwise comparison across all
// pairs of colorings), superseded here by the canonical-form algorithm
// below, which this package implements exclusively. When group has only the
// identity, no reduction is possible
// (the enumerator's block-0 anchoring already prevents relabeling
// duplicates) and the input is returned unchanged, copied.
func Reduce(cols []Coloring, group automorphism.Group) []Coloring {
	if automorphism.IsIdentityOnly(group) {
		out := make([]Coloring, len(cols))
		for i, c := range cols {
			cp := make(Coloring, len(c))
			copy(cp, c)
			out[i] = cp
		}

		return out
	}

	canon := make([]Coloring, len(cols))
	for i, c := range cols {
		canon[i] = canonicalForm(c, group)
	}

	sort.Slice(canon, func(i, j int) bool { return lexLess(canon[i], canon[j]) })

	var result []Coloring
	for i, c := range canon {
		if i == 0 || !lexEqual(canon[i-1], c) {
			result = append(result, c)
		}
	}

	return result
}

// canonicalForm returns the lexicographically smallest sequence obtainable
// from coloring by composing a graph automorphism with a color relabeling
// (colors renamed in the order each is first encountered along pi).
func canonicalForm(coloring Coloring, group automorphism.Group) Coloring {
	n := len(coloring)
	best := make(Coloring, n)
	haveBest := false

	candidate := make(Coloring, n)
	dict := make([]int, graph.MaxColors)

	for _, pi := range group {
		for i := range dict {
			dict[i] = -1
		}

		nextColor := 0
		better := !haveBest
		worse := false

		for j := 0; j < n; j++ {
			v := pi[j]
			oldColor := coloring[v]
			newColor := dict[oldColor]
			if newColor < 0 {
				dict[oldColor] = nextColor
				newColor = nextColor
				nextColor++
			}

			if !better {
				if newColor > best[j] {
					worse = true
					break
				}
				if newColor < best[j] {
					better = true
				}
			}

			candidate[j] = newColor
		}

		if worse {
			continue
		}
		if better {
			copy(best, candidate)
			haveBest = true
		}
	}

	return best
}

func lexLess(a, b Coloring) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

func lexEqual(a, b Coloring) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
