package coloring

import (
	"math/bits"

	"github.com/fibergraph/fiberlab/graph"
)

// UpperBound derives an upper bound on the number of colors a legal orbit
// could possibly use, from the shape of the legal states and the supplied
// cliques.
//
// Ported from original_source/impl/coloring.c's num_colors_upper_bound:
// start from floor(log2(len(legalStates)))+1 (the 1-clique case, "no orbit
// can be larger than the legal-state set itself"), then for every clique K
// of size m, find the minimum number of legal states sharing a given folded
// bit-pattern on K's positions; if that minimum is small, no k-coloring
// making K rainbow can have its orbit close up, and the bound tightens to
// floor(log2(min << m)).
//
// Precondition: legalStates only contains the non-redundant half (bit n-1
// clear); cliques have size >= 2.
func UpperBound(n int, cliques graph.CliqueList, legalStates []graph.State) int {
	upperBound := log2(len(legalStates)) + 1

	for _, clique := range cliques {
		size := len(clique)
		max := 1 << uint(size-1)
		counts := make([]int, max)

		for _, s := range legalStates {
			bitsAtClique := 0
			for b, v := range clique {
				if uint32(s)&(1<<uint(v)) != 0 {
					bitsAtClique |= 1 << uint(b)
				}
			}
			if bitsAtClique >= max {
				bitsAtClique = 2*max - bitsAtClique - 1
			}
			counts[bitsAtClique]++
		}

		min := len(legalStates)
		for _, c := range counts {
			if c < min {
				min = c
			}
		}

		candidate := log2(min << uint(size))
		if candidate < upperBound {
			upperBound = candidate
		}
	}

	return upperBound
}

// log2 returns floor(log2(a)) for a > 0, and -1 for a <= 0, matching
// original_source/impl/utils.h's log2_int.
func log2(a int) int {
	if a <= 0 {
		return -1
	}

	return bits.Len(uint(a)) - 1
}
