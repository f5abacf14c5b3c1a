// Package orbit walks the (Z/2)^k orbit a coloring's color masks induce on
// the legal-state set, via Gray-code traversal, and decides which orbits are
// entirely legal.
//
// Grounded directly on original_source/impl/legal.c's find_legal_orbits /
// find_legal_orbits_single: the Gray-code walk (toggle bit 0 on even steps;
// on odd steps toggle 1+floor(log2(lowest set bit of a running counter)))
// avoids recomputing acted from scratch on every step, which matters once n
// and k grow: an orbit has 2^k members, and each would otherwise cost O(n)
// to refold.
package orbit

import (
	"math/bits"

	"github.com/fibergraph/fiberlab/coloring"
	"github.com/fibergraph/fiberlab/graph"
)

// Result holds, for one coloring, the seed states of every legal orbit
// found: one representative state per orbit, in discovery order.
type Result struct {
	Coloring coloring.Coloring
	Seeds    []graph.State
}

// Search walks every orbit reachable from legalStates under c's color-mask
// group and returns the seeds of the legal ones. legalDict is a dense
// membership map of length 2^(n-1); Search mutates its own private copy and
// never touches the caller's slice.
//
// If stopAfterFirst is true, Search returns after the first legal orbit it
// finds, with a single seed in Seeds.
func Search(n int, c coloring.Coloring, legalStates []graph.State, legalDict []bool, stopAfterFirst bool) Result {
	legal := make([]bool, len(legalDict))
	copy(legal, legalDict)

	numCols := c.NumColors()
	// The Gray-code walk below can, on its very last (discarded) toggle,
	// compute a color index equal to numCols itself -- one past the last
	// real color -- matching original_source/impl/legal.c's color_masks[n]
	// sizing (n vertices, never just num_cols); that slot is never
	// populated by ColorMasks and always reads as zero, a no-op XOR.
	colorMasks := c.ColorMasks(numCols + 1)

	orbitSize := 1 << uint(numCols)
	halfOrbit := orbitSize >> 1
	maxStates := 1 << uint(n-1)

	remaining := 0
	for _, ok := range legal {
		if ok {
			remaining++
		}
	}

	res := Result{Coloring: c}

	idx := 0
	for remaining >= halfOrbit {
		state := legalStates[idx]
		if !legal[state] {
			idx++
			continue
		}

		orbitLegal := true
		acted := state
		binary := 0

		for step := 0; step < orbitSize; step++ {
			if int(acted) < maxStates {
				if legal[acted] {
					legal[acted] = false
					remaining--
				} else {
					orbitLegal = false
				}
			}

			if step&1 == 0 {
				binary ^= 1
				acted ^= graph.State(colorMasks[0])
			} else {
				y := binary & (-binary)
				binary ^= y << 1
				acted ^= graph.State(colorMasks[bits.Len(uint(y))])
			}
		}

		if orbitLegal {
			res.Seeds = append(res.Seeds, state)
			if stopAfterFirst {
				return res
			}
		}
	}

	return res
}
