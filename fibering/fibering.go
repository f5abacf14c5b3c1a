// Package fibering wires graph, automorphism, legalstate, coloring, orbit
// and workerpool into a single entry point: given a graph and its clique
// list, decide whether it fibers and, if asked, collect every witness.
//
// Grounded on original_source/impl/fibering.c's graph_fiberings: the data
// flow (automorphisms and legal states computed once per graph, then for
// each candidate color count k in [minCols, maxCols] enumerate and reduce
// colorings, then search their orbits) matches that function line for line
// in spirit, restructured into the package-per-concern shape the rest of
// this module follows lvlath in using.
package fibering

import (
	"context"
	"errors"

	"github.com/fibergraph/fiberlab/automorphism"
	"github.com/fibergraph/fiberlab/coloring"
	"github.com/fibergraph/fiberlab/graph"
	"github.com/fibergraph/fiberlab/legalstate"
	"github.com/fibergraph/fiberlab/orbit"
	"github.com/fibergraph/fiberlab/workerpool"
)

// Witness pairs a coloring with the seed states of every legal orbit it
// produced.
type Witness struct {
	Coloring coloring.Coloring
	Seeds    []graph.State
}

// Result is the outcome of a GraphFiberings call.
type Result struct {
	// Witnesses holds one entry per coloring that produced at least one
	// legal orbit. Empty (nil) means the graph does not fiber in the
	// requested color range -- not an error.
	Witnesses []Witness

	// Fibers reports whether Witnesses is nonempty.
	Fibers bool

	// MinColors and MaxColors are the color range actually searched, after
	// resolving the min_cols=0/max_cols=0 "use the computed default" rule.
	MinColors, MaxColors int
}

// Options configures a GraphFiberings call.
type Options struct {
	MinColors   int
	MaxColors   int
	Threads     int
	SingleOrbit bool
	OnProgress  func(workerpool.Progress)
}

// Option configures Options.
type Option func(*Options)

// WithMinColors sets the smallest color count tried. 0 (the default) means
// "use the chromatic lower estimate, the largest supplied clique's size".
func WithMinColors(k int) Option { return func(o *Options) { o.MinColors = k } }

// WithMaxColors sets the largest color count tried. 0 (the default) means
// "use the computed upper bound" (coloring.UpperBound).
func WithMaxColors(k int) Option { return func(o *Options) { o.MaxColors = k } }

// WithThreads sets the worker count used for the orbit search of each color
// count's reduced coloring list.
func WithThreads(n int) Option { return func(o *Options) { o.Threads = n } }

// WithSingleOrbit stops the entire search at the first legal orbit found,
// across every color count still to be tried.
func WithSingleOrbit(stop bool) Option { return func(o *Options) { o.SingleOrbit = stop } }

// WithProgress forwards a progress callback to the underlying workerpool.Run
// calls, one per color count searched.
func WithProgress(fn func(workerpool.Progress)) Option {
	return func(o *Options) { o.OnProgress = fn }
}

// ErrNoCliqueAndNoMinColors is returned when MinColors is left at its
// zero-value default and cliques is empty, leaving no lower estimate to
// derive.
var ErrNoCliqueAndNoMinColors = errors.New("fibering: no min-colors given and cliques is empty")

// GraphFiberings searches g for legal orbits across every color count in
// [minColors, maxColors], honoring Options, and returns the resulting
// witness set.
func GraphFiberings(ctx context.Context, g *graph.Graph, cliques graph.CliqueList, opts ...Option) (Result, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}

	n := g.N()
	if err := cliques.Validate(n); err != nil {
		return Result{}, err
	}

	minCols := o.MinColors
	if minCols == 0 {
		if len(cliques) == 0 {
			return Result{}, ErrNoCliqueAndNoMinColors
		}
		minCols = len(cliques[0])
	}

	group := automorphism.Enumerate(g)
	legal := legalstate.All(g, legalstate.WithAutomorphisms(group))

	maxCols := o.MaxColors
	if maxCols == 0 {
		maxCols = coloring.UpperBound(n, cliques, legal.States)
	}
	if maxCols > graph.MaxColors {
		return Result{}, coloring.ErrTooManyColors
	}

	partition := coloring.CliquewisePartition(n, cliques)

	res := Result{MinColors: minCols, MaxColors: maxCols}

	for k := minCols; k <= maxCols; k++ {
		cols, err := coloring.EnumerateAll(g, k, partition)
		if err != nil {
			return Result{}, err
		}

		reduced := coloring.Reduce(cols, group)
		if len(reduced) == 0 {
			continue
		}

		orbitResults, err := workerpool.Run(ctx, n, reduced, legal.States, legal.Dict,
			workerpool.WithThreads(o.Threads),
			workerpool.WithStopAfterFirst(o.SingleOrbit),
			workerpool.WithProgress(o.OnProgress),
		)
		if err != nil {
			return Result{}, err
		}

		for _, r := range orbitResults {
			res.Witnesses = append(res.Witnesses, witnessFrom(r))
		}

		if o.SingleOrbit && len(res.Witnesses) > 0 {
			break
		}
	}

	res.Fibers = len(res.Witnesses) > 0

	return res, nil
}

func witnessFrom(r orbit.Result) Witness {
	return Witness{Coloring: r.Coloring, Seeds: r.Seeds}
}
