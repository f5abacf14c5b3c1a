package coloring

import "github.com/fibergraph/fiberlab/graph"

// CliquewisePartition builds the clique-anchored vertex partition driving
// coloring enumeration: block 0 is the largest clique in cliques (or, if
// cliques is empty, a trivial singleton), and every remaining vertex
// follows as its own singleton block in ascending order.
//
// Grounded on original_source/impl/coloring.c's cliquewise_vertex_partition,
// which -- for performance -- only ever seats a single clique (the first,
// largest one) rather than greedily packing multiple disjoint cliques; this
// port keeps that simplification, noted explicitly in the C comments.
func CliquewisePartition(n int, cliques graph.CliqueList) graph.Partition {
	used := make([]bool, n)
	var partition graph.Partition

	if len(cliques) > 0 && len(cliques[0]) <= n {
		first := cliques[0]
		block := make(graph.Block, len(first))
		copy(block, first)
		partition = append(partition, block)
		for _, v := range first {
			used[v] = true
		}
	}

	for v := 0; v < n; v++ {
		if !used[v] {
			partition = append(partition, graph.Block{v})
		}
	}

	return partition
}
