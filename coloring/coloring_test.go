package coloring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibergraph/fiberlab/automorphism"
	"github.com/fibergraph/fiberlab/graph"
)

func mustGraph(t *testing.T, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	set := map[[2]int]bool{}
	for _, e := range edges {
		set[[2]int{e[0], e[1]}] = true
		set[[2]int{e[1], e[0]}] = true
	}
	g, err := graph.NewFromUpper(n, func(i, j int) bool { return set[[2]int{i, j}] })
	require.NoError(t, err)

	return g
}

func isProper(t *testing.T, g *graph.Graph, c Coloring) {
	t.Helper()
	for i := 0; i < g.N(); i++ {
		for j := i + 1; j < g.N(); j++ {
			if g.Adjacent(i, j) {
				assert.NotEqual(t, c[i], c[j], "edge (%d,%d) same color", i, j)
			}
		}
	}
}

func TestCliquewisePartition(t *testing.T) {
	p := CliquewisePartition(5, graph.CliqueList{{0, 1, 2}})
	require.Len(t, p, 3)
	assert.Equal(t, graph.Block{0, 1, 2}, p[0])
	assert.Equal(t, graph.Block{3}, p[1])
	assert.Equal(t, graph.Block{4}, p[2])
}

func TestCliquewisePartition_NoCliques(t *testing.T) {
	p := CliquewisePartition(3, nil)
	require.Len(t, p, 3)
	for i, b := range p {
		assert.Equal(t, graph.Block{i}, b)
	}
}

func TestEnumerateAll_K4(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	partition := CliquewisePartition(4, graph.CliqueList{{0, 1, 2, 3}})

	cols, err := EnumerateAll(g, 4, partition)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, Coloring{0, 1, 2, 3}, cols[0])
	isProper(t, g, cols[0])
}

func TestEnumerateAll_C4_TwoColors(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}})
	partition := CliquewisePartition(4, graph.CliqueList{{0, 1}})

	cols, err := EnumerateAll(g, 2, partition)
	require.NoError(t, err)
	for _, c := range cols {
		isProper(t, g, c)
		assert.Equal(t, 2, c.NumColors())
	}
	assert.NotEmpty(t, cols)
}

func TestEnumerateAll_TooManyColors(t *testing.T) {
	g := mustGraph(t, 2, nil)
	partition := CliquewisePartition(2, nil)
	_, err := EnumerateAll(g, 33, partition)
	assert.ErrorIs(t, err, ErrTooManyColors)
}

func TestReduce_IdentityOnlyCopies(t *testing.T) {
	cols := []Coloring{{0, 1}, {1, 0}}
	out := Reduce(cols, automorphism.Group{{0, 1}})
	require.Len(t, out, 2)
	assert.Equal(t, cols[0], out[0])
}

func TestReduce_C4SoundAndExhaustive(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 3}})
	partition := CliquewisePartition(4, graph.CliqueList{{0, 1}})
	cols, err := EnumerateAll(g, 2, partition)
	require.NoError(t, err)

	group := automorphism.Enumerate(g)
	reduced := Reduce(cols, group)

	// C4 has exactly one proper 2-coloring up to automorphism: the
	// bipartition (0,1,0,1)-shaped.
	assert.Len(t, reduced, 1)
	isProper(t, g, reduced[0])

	// idempotence: reducing again changes nothing.
	again := Reduce(reduced, group)
	assert.Equal(t, reduced, again)
}

func TestReduce_K33_OneCloringUpToEquivalence(t *testing.T) {
	// K_{3,3}: parts {0,1,2} and {3,4,5}.
	var edges [][2]int
	for i := 0; i < 3; i++ {
		for j := 3; j < 6; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	g := mustGraph(t, 6, edges)
	partition := CliquewisePartition(6, nil) // no triangle clique in bipartite graph
	cols, err := EnumerateAll(g, 2, partition)
	require.NoError(t, err)
	require.NotEmpty(t, cols)

	group := automorphism.Enumerate(g)
	assert.Len(t, group, 72) // |Aut(K_{3,3})| = 2*(3!)^2 = 72

	reduced := Reduce(cols, group)
	assert.Len(t, reduced, 1)
}

func TestUpperBound_K4(t *testing.T) {
	// K4's every nonempty proper subset is legal (singleton induced
	// subgraphs are trivially connected), so legalStates is all of
	// 1..2^3-1. The lone clique spans all 4 vertices, so its bit-pattern
	// count for the pattern with every clique vertex on the same side is 0
	// (that state is empty, never legal), collapsing the bound below 0: no 4-coloring of K4 can
	// ever close into a legal orbit.
	legalStates := []graph.State{1, 2, 3, 4, 5, 6, 7}
	bound := UpperBound(4, graph.CliqueList{{0, 1, 2, 3}}, legalStates)
	assert.Less(t, bound, 0)
}

func TestUpperBound_C4(t *testing.T) {
	// C4's 6 legal states ({1,2,3,4,6,7}, excluding 5) against its 4
	// size-2 cliques (the edges) yield an upper bound of 3.
	legalStates := []graph.State{1, 2, 3, 4, 6, 7}
	bound := UpperBound(4, graph.CliqueList{{0, 1}, {1, 2}, {2, 3}, {0, 3}}, legalStates)
	assert.Equal(t, 3, bound)
}
