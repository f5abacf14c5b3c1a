package coloring

import (
	"github.com/fibergraph/fiberlab/combinatorics"
	"github.com/fibergraph/fiberlab/graph"
)

// EnumerateAll generates every proper numCols-coloring of g consistent with
// partition: block 0 (the clique) is colored 0,1,...,len(block0)-1 in its
// stored vertex order, which breaks every color relabeling fixing block 0
// and guarantees no coloring is emitted twice for that reason.
//
// Ported from original_source/impl/coloring.c's find_all_colorings /
// find_all_colorings_impl. Precondition: numCols <= graph.MaxColors.
func EnumerateAll(g *graph.Graph, numCols int, partition graph.Partition) ([]Coloring, error) {
	if numCols > graph.MaxColors {
		return nil, ErrTooManyColors
	}
	if len(partition) == 0 {
		return nil, ErrEmptyPartition
	}

	n := g.N()
	current := make(Coloring, n)
	for i := range current {
		current[i] = -1
	}

	e := &enumerator{g: g, numCols: numCols, partition: partition, n: n}
	e.recurse(current, 0, 0)

	return e.results, nil
}

type enumerator struct {
	g         *graph.Graph
	numCols   int
	partition graph.Partition
	n         int
	results   []Coloring
}

// recurse builds colorings block by block. usedCols is the number of
// distinct colors committed so far; level indexes into e.partition.
func (e *enumerator) recurse(current Coloring, usedCols, level int) {
	if level == len(e.partition) {
		cp := make(Coloring, e.n)
		copy(cp, current)
		e.results = append(e.results, cp)
		return
	}

	block := e.partition[level]
	blockSize := len(block)

	if level == 0 {
		if blockSize > e.numCols || e.numCols > e.n {
			return
		}
		for i, v := range block {
			current[v] = i
		}
		e.recurse(current, blockSize, level+1)
		for _, v := range block {
			current[v] = -1
		}
		return
	}

	remaining := 0
	for _, b := range e.partition[level+1:] {
		remaining += len(b)
	}

	minNewCols := max(0, e.numCols-usedCols-remaining)
	maxNewCols := min(blockSize, e.numCols-usedCols)

	for newCols := minNewCols; newCols <= maxNewCols; newCols++ {
		e.tryNewColCount(current, usedCols, level, block, newCols)
	}
}

// tryNewColCount enumerates every way to pick newCols positions within
// block to receive fresh colors, then every legal assignment of the
// already-used colors to the remaining positions.
func (e *enumerator) tryNewColCount(current Coloring, usedCols, level int, block graph.Block, newCols int) {
	blockSize := len(block)
	newColVertPositions := combinatorics.AllSubsets(blockSize, newCols)

	for row := 0; row < newColVertPositions.Len(); row++ {
		chosen := newColVertPositions.Row(row)

		for j, idx := range chosen {
			current[block[idx]] = usedCols + j
		}

		remainingIndices := complementIndices(blockSize, chosen)
		remCount := len(remainingIndices)

		forbidden := make([]uint32, remCount)
		for r, idx := range remainingIndices {
			v := block[idx]
			var mask uint32
			for k := 0; k < e.n; k++ {
				if e.g.Adjacent(v, k) && current[k] >= 0 {
					mask |= 1 << uint(current[k])
				}
			}
			forbidden[r] = mask
		}

		e.assignRemaining(current, usedCols, level, block, remainingIndices, forbidden, newCols)

		for _, idx := range chosen {
			current[block[idx]] = -1
		}
	}
}

// assignRemaining enumerates every ordered assignment of usedCols existing
// colors to the remaining (not-freshly-colored) positions in block, skips
// assignments hitting a forbidden color, and recurses on each valid one.
func (e *enumerator) assignRemaining(current Coloring, usedCols, level int, block graph.Block, remainingIndices []int, forbidden []uint32, newCols int) {
	remCount := len(remainingIndices)
	if remCount == 0 {
		e.recurse(current, usedCols+newCols, level+1)
		return
	}

	choices := combinatorics.AllOrderedSelections(usedCols, remCount)
	for row := 0; row < choices.Len(); row++ {
		assignment := choices.Row(row)

		valid := true
		for r, c := range assignment {
			if forbidden[r]&(1<<uint(c)) != 0 {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		for r, idx := range remainingIndices {
			current[block[idx]] = assignment[r]
		}

		e.recurse(current, usedCols+newCols, level+1)
	}

	for _, idx := range remainingIndices {
		current[block[idx]] = -1
	}
}

// complementIndices returns, in ascending order, the indices in [0,size)
// not present in chosen (which is itself ascending, as combinatorics.
// AllSubsets guarantees).
func complementIndices(size int, chosen []int) []int {
	out := make([]int, 0, size-len(chosen))
	c := 0
	for i := 0; i < size; i++ {
		if c < len(chosen) && chosen[c] == i {
			c++
			continue
		}
		out = append(out, i)
	}

	return out
}
