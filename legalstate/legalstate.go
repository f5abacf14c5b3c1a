// Package legalstate enumerates legal states of a graph: bitmask subsets s
// with 0 < popcount(s) < n whose induced subgraph and complement are both
// connected, folded into the canonical half where bit n-1 is clear.
//
// The connectivity check is a small BFS, grounded directly on
// original_source/impl/legal.c's subgraph_connected/is_state_legal, adapted
// to the traversal shape lvlath's bfs package uses (an explicit FIFO queue,
// a visited set, Options for the caller to pick naive vs. automorphism-
// reduced enumeration) rather than the C original's fixed-size array queue.
package legalstate

import (
	"sort"

	"github.com/fibergraph/fiberlab/automorphism"
	"github.com/fibergraph/fiberlab/graph"
)

// Set is the result of enumerating legal states: a sorted list of legal
// graph.State values plus a dense membership Dict of length 2^(n-1) for
// O(1) lookup. Dict is read-only after construction; callers that need to
// destructively mark members (package orbit) must copy it first.
type Set struct {
	States []graph.State
	Dict   []bool // len 2^(n-1)
}

// Options configures legal-state enumeration.
type Options struct {
	// Automorphisms, if non-empty, switches on automorphism-reduced
	// enumeration: each newly discovered state's orbit under the group is
	// marked visited in one pass, avoiding redundant connectivity checks.
	// An empty (or single-identity) group behaves like naive enumeration.
	Automorphisms automorphism.Group
}

// Option configures a Set computation.
type Option func(*Options)

// WithAutomorphisms enables automorphism-reduced enumeration using the
// given automorphism group (typically automorphism.Enumerate(g)'s result).
func WithAutomorphisms(group automorphism.Group) Option {
	return func(o *Options) { o.Automorphisms = group }
}

// All enumerates every legal state of g. With no automorphisms supplied it
// tests every s in [1, 2^(n-1)) independently (the naive mode). With
// WithAutomorphisms it additionally marks each state's full orbit as seen
// once it is first computed, skipping redundant connectivity checks, which
// is the enumeration all production callers should use.
func All(g *graph.Graph, opts ...Option) *Set {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	n := g.N()
	max := 1 << uint(n-1)

	result := &Set{Dict: make([]bool, max)}
	seen := make([]int8, max) // -1 unknown, 0 known-illegal, 1 known-legal
	for i := range seen {
		seen[i] = -1
	}

	for s := 1; s < max; s++ {
		if seen[s] >= 0 {
			continue
		}

		legal := IsLegal(g, graph.State(s))

		if len(o.Automorphisms) == 0 {
			if legal {
				seen[s] = 1
				result.States = append(result.States, graph.State(s))
				result.Dict[s] = true
			} else {
				seen[s] = 0
			}
			continue
		}

		for _, perm := range o.Automorphisms {
			acted := automorphism.Apply(perm, graph.State(s)).Fold(n)
			if seen[acted] >= 0 {
				continue // orbit might not be free; don't double-count
			}
			if legal {
				seen[acted] = 1
				result.States = append(result.States, acted)
				result.Dict[acted] = true
			} else {
				seen[acted] = 0
			}
		}
	}

	// orbit images are discovered out of order; restore ascending order.
	sort.Slice(result.States, func(i, j int) bool { return result.States[i] < result.States[j] })

	return result
}

// IsLegal reports whether state s is legal in g: both the induced subgraph
// on its set bits and the induced subgraph on its unset bits (restricted to
// g's n vertices) are nonempty and connected.
func IsLegal(g *graph.Graph, s graph.State) bool {
	n := g.N()

	asc := make([]int, 0, n)
	desc := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if uint32(s)&(1<<uint(v)) != 0 {
			asc = append(asc, v)
		} else {
			desc = append(desc, v)
		}
	}

	if len(asc) == 0 || len(desc) == 0 {
		return false
	}

	return subgraphConnected(g, asc) && subgraphConnected(g, desc)
}

// subgraphConnected reports whether the subgraph induced by vertices is
// connected, via a BFS from vertices[0] labeled in local 0..len(vertices)-1
// indices and translated back through vertices, matching
// original_source/impl/legal.c's subgraph_connected.
func subgraphConnected(g *graph.Graph, vertices []int) bool {
	size := len(vertices)
	visited := make([]bool, size)
	queue := make([]int, 0, size)

	visited[0] = true
	queue = append(queue, 0)

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		for i := 0; i < size; i++ {
			if !visited[i] && g.Adjacent(vertices[v], vertices[i]) {
				visited[i] = true
				queue = append(queue, i)
			}
		}
	}

	for i := 1; i < size; i++ {
		if !visited[i] {
			return false
		}
	}

	return true
}
