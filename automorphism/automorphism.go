// Package automorphism enumerates the graph automorphisms of a graph.Graph:
// permutations pi of {0,...,n-1} such that A[i][j] = A[pi(i)][pi(j)] for all
// i, j.
//
// The search is the same depth-first partial-edge-check backtracking used by
// original_source/isom.c's get_isometries: no pruning beyond checking, at
// each level, that the partial assignment preserves every edge seen so far.
// For the graph sizes this engine targets (n <= 31, and in practice far
// smaller for anything with a nontrivial automorphism group) this is ample.
package automorphism

import "github.com/fibergraph/fiberlab/graph"

// Permutation maps vertex v to Permutation[v].
type Permutation []int

// Group is the list of all automorphisms of a graph, with the identity
// permutation always first.
type Group []Permutation

// Enumerate returns every automorphism of g. The identity is always
// Group[0]. The result is never empty: every graph has at least the
// identity automorphism.
func Enumerate(g *graph.Graph) Group {
	n := g.N()
	current := make([]int, n)
	used := make([]bool, n)

	var group Group
	var recurse func(level int)
	recurse = func(level int) {
		if level == n {
			perm := make(Permutation, n)
			copy(perm, current)
			group = append(group, perm)
			return
		}

		for candidate := 0; candidate < n; candidate++ {
			if used[candidate] {
				continue
			}

			ok := true
			for j := 0; j < level; j++ {
				if g.Adjacent(level, j) != g.Adjacent(candidate, current[j]) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}

			used[candidate] = true
			current[level] = candidate
			recurse(level + 1)
			used[candidate] = false
		}
	}
	recurse(0)

	return group
}

// Apply returns the image of state s under permutation p: the bitmask with
// bit p[v] set for every bit v set in s.
func Apply(p Permutation, s graph.State) graph.State {
	var out uint32
	in := uint32(s)
	for v := 0; v < len(p); v++ {
		if in&(1<<uint(v)) != 0 {
			out |= 1 << uint(p[v])
		}
	}

	return graph.State(out)
}

// IsIdentityOnly reports whether g's only automorphism is the identity, the
// case in which coloring reduction is a no-op copy (see package coloring).
func IsIdentityOnly(group Group) bool {
	return len(group) <= 1
}
