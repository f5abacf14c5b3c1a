// Package graph6 encodes and decodes a graph6-like 6-bit line format: byte 0
// is n+63, subsequent bytes each minus 63 form a bitstream of n(n-1)/2 bits,
// MSB first within each 6-bit byte, giving the upper-triangle adjacency bit
// per vertex pair.
//
// Grounded on original_source/impl/fibering_multi.c's
// read_adj_matrix_graph6 / graph6_from_adj_matrix. Two pair orderings are
// found in the wild for this format; Order selects which one a
// Decode/Encode call uses.
package graph6

import (
	"errors"
	"fmt"

	"github.com/fibergraph/fiberlab/graph"
)

// Order selects the traversal order pairing vertex bits to bitstream
// positions.
type Order int

const (
	// OrderColumnMajor groups pairs by increasing j, i ascending within each
	// j: (0,1),(0,2),(1,2),(0,3),(1,3),(2,3),... This is the order
	// read_adj_matrix_graph6/graph6_from_adj_matrix actually implement, and
	// the standard literature graph6 order.
	OrderColumnMajor Order = iota

	// OrderRowMajor groups pairs by increasing i, j ascending within each
	// row: (0,1),(0,2),(0,3),...,(1,2),(1,3),...,(2,3),... the alternate
	// ordering some graph6 producers use.
	OrderRowMajor
)

// Sentinel errors for malformed graph6 input.
var (
	ErrEmpty          = errors.New("graph6: empty input")
	ErrTruncated      = errors.New("graph6: bitstream shorter than n(n-1)/2 bits")
	ErrBadSizeByte    = errors.New("graph6: size byte out of range")
	ErrVertexOverflow = errors.New("graph6: n exceeds graph.MaxVertices")
)

// pairs returns the n(n-1)/2 vertex pairs (i,j), i<j, in the traversal order
// order dictates.
func pairs(n int, order Order) [][2]int {
	out := make([][2]int, 0, n*(n-1)/2)

	switch order {
	case OrderRowMajor:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				out = append(out, [2]int{i, j})
			}
		}
	default: // OrderColumnMajor
		for j := 1; j < n; j++ {
			for i := 0; i < j; i++ {
				out = append(out, [2]int{i, j})
			}
		}
	}

	return out
}

// Decode parses a single graph6-like line into a Graph, using the given
// pair order.
func Decode(line string, order Order) (*graph.Graph, error) {
	if len(line) == 0 {
		return nil, ErrEmpty
	}

	n := int(line[0]) - 63
	if n < 1 {
		return nil, ErrBadSizeByte
	}
	if n > graph.MaxVertices {
		return nil, ErrVertexOverflow
	}

	body := line[1:]
	ps := pairs(n, order)
	needBytes := (len(ps) + 5) / 6
	if len(body) < needBytes {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, needBytes, len(body))
	}

	adj := make([]bool, n*n)
	for k, p := range ps {
		byteIdx := k / 6
		bitIdx := k % 6
		chr := int(body[byteIdx]) - 63
		bit := (chr >> uint(5-bitIdx)) & 1
		if bit != 0 {
			i, j := p[0], p[1]
			adj[i*n+j] = true
			adj[j*n+i] = true
		}
	}

	return graph.New(n, adj)
}

// Encode renders g as a single graph6-like line, using the given pair order.
func Encode(g *graph.Graph, order Order) string {
	n := g.N()
	ps := pairs(n, order)

	out := make([]byte, 0, 1+(len(ps)+5)/6)
	out = append(out, byte(n+63))

	var curr byte
	bitIdx := 0
	for _, p := range ps {
		if g.Adjacent(p[0], p[1]) {
			curr |= 1 << uint(5-bitIdx)
		}
		bitIdx++
		if bitIdx == 6 {
			out = append(out, curr+63)
			curr = 0
			bitIdx = 0
		}
	}
	if bitIdx > 0 {
		out = append(out, curr+63)
	}

	return string(out)
}
