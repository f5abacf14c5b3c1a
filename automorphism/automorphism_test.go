package automorphism

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestEnumerate_K4HasAllPermutations(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	group := Enumerate(g)
	assert.Len(t, group, 24) // |S_4|
	assert.Equal(t, Permutation{0, 1, 2, 3}, group[0])
}

func TestEnumerate_C4HasDihedralGroup(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	group := Enumerate(g)
	assert.Len(t, group, 8) // dihedral group of order 8
	assert.Equal(t, Permutation{0, 1, 2, 3}, group[0])
}

func TestEnumerate_P3HasOneReflection(t *testing.T) {
	g := mustGraph(t, 3, [][2]int{{0, 1}, {1, 2}})
	group := Enumerate(g)
	// P3 has a reflection swapping the two endpoints: identity + one swap.
	assert.Len(t, group, 2)
	assert.True(t, IsIdentityOnly(Group{group[0]}))
	assert.False(t, IsIdentityOnly(group))
}

func TestApply(t *testing.T) {
	p := Permutation{1, 0, 2} // swap 0 and 1
	s := graph.State(0b001)  // vertex 0 set
	assert.Equal(t, graph.State(0b010), Apply(p, s))
}

func TestEnumerate_PawHasOneSwap(t *testing.T) {
	// a "paw": triangle 0-1-2 plus a pendant 3 attached to 0 only.
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}})
	group := Enumerate(g)
	assert.Len(t, group, 2) // swapping 1 and 2 is the only nontrivial symmetry
}
