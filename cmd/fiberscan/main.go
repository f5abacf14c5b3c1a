// Command fiberscan is a thin CLI collaborator around package fibering: it
// reads one graph6 line, runs GraphFiberings over a color-count range, and
// prints the witnesses it finds. It is deliberately small -- the spec treats
// the CLI as an unspecified external collaborator, not a core module.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fibergraph/fiberlab/fibering"
	"github.com/fibergraph/fiberlab/graph"
	"github.com/fibergraph/fiberlab/graph6"
	"github.com/fibergraph/fiberlab/workerpool"
)

var (
	graph6Line string
	minColors  int
	maxColors  int
	threads    int
	singleOrb  bool
	outPath    string
	rowMajor   bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fiberscan:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fiberscan",
		Short:         "Search one graph for legally-fibering proper colorings",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runScan,
	}

	cmd.Flags().StringVar(&graph6Line, "graph6", "", "graph6-encoded input graph (required)")
	cmd.Flags().IntVar(&minColors, "min-colors", 0, "smallest color count to try (0: derive from the largest clique)")
	cmd.Flags().IntVar(&maxColors, "max-colors", 0, "largest color count to try (0: derive an upper bound)")
	cmd.Flags().IntVar(&threads, "threads", 1, "worker threads per color count")
	cmd.Flags().BoolVar(&singleOrb, "single-orbit", false, "stop at the first legal orbit found")
	cmd.Flags().StringVar(&outPath, "out", "", "append the input graph's graph6 line here if it fibers")
	cmd.Flags().BoolVar(&rowMajor, "row-major", false, "decode --graph6 in row-major bit order instead of column-major")
	cmd.MarkFlagRequired("graph6")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	order := graph6.OrderColumnMajor
	if rowMajor {
		order = graph6.OrderRowMajor
	}

	g, err := graph6.Decode(strings.TrimSpace(graph6Line), order)
	if err != nil {
		return fmt.Errorf("decoding --graph6: %w", err)
	}

	cliques := maximalCliquesBruteForce(g)

	var opts []fibering.Option
	if minColors > 0 {
		opts = append(opts, fibering.WithMinColors(minColors))
	}
	if maxColors > 0 {
		opts = append(opts, fibering.WithMaxColors(maxColors))
	}
	opts = append(opts,
		fibering.WithThreads(threads),
		fibering.WithSingleOrbit(singleOrb),
		fibering.WithProgress(func(p workerpool.Progress) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r%d/%d colorings checked (%.0f%%, eta %s)",
				p.Done, p.Total, p.Fraction()*100, p.ETA().Round(1e9))
		}),
	)

	res, err := fibering.GraphFiberings(context.Background(), g, cliques, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr())

	if !res.Fibers {
		fmt.Fprintln(cmd.OutOrStdout(), "no legal orbit found")
		return nil
	}

	for _, w := range res.Witnesses {
		fmt.Fprintf(cmd.OutOrStdout(), "coloring %v: %d legal orbit(s), seeds %v\n", w.Coloring, len(w.Seeds), w.Seeds)
	}

	if outPath != "" {
		f, err := os.OpenFile(outPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening --out: %w", err)
		}
		defer f.Close()

		if _, err := fmt.Fprintln(f, graph6.Encode(g, order)); err != nil {
			return fmt.Errorf("writing --out: %w", err)
		}
	}

	return nil
}

// maximalCliquesBruteForce finds every maximal clique by brute-force subset
// growth, good enough for the small graphs this tool targets (n <= 31); it
// doesn't need to be fast, only to hand fibering.GraphFiberings a genuine
// clique list when the caller doesn't supply one some other way.
func maximalCliquesBruteForce(g *graph.Graph) graph.CliqueList {
	n := g.N()
	var cliques graph.CliqueList

	var grow func(candidates, clique []int)
	grow = func(candidates, clique []int) {
		if len(candidates) == 0 {
			if len(clique) >= 2 {
				c := make(graph.Clique, len(clique))
				copy(c, clique)
				cliques = append(cliques, c)
			}
			return
		}

		v := candidates[0]
		rest := candidates[1:]

		var withV []int
		for _, u := range rest {
			if g.Adjacent(v, u) {
				withV = append(withV, u)
			}
		}
		grow(withV, append(append([]int{}, clique...), v))
		grow(rest, clique)
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	grow(all, nil)

	out := dedupMaximal(cliques)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })

	return out
}

func dedupMaximal(cliques graph.CliqueList) graph.CliqueList {
	var out graph.CliqueList
	for i, c := range cliques {
		maximal := true
		for j, d := range cliques {
			if i == j || len(d) <= len(c) {
				continue
			}
			if isSubset(c, d) {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, c)
		}
	}
	return out
}

func isSubset(a, b graph.Clique) bool {
	set := map[int]bool{}
	for _, v := range b {
		set[v] = true
	}
	for _, v := range a {
		if !set[v] {
			return false
		}
	}
	return true
}
