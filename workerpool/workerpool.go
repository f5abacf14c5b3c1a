// Package workerpool partitions a coloring list across T concurrent workers,
// each running package orbit's legal-orbit search over its private slice,
// and reports aggregate progress.
//
// Grounded on original_source/impl/legal.c's find_legal_orbits /
// orbit_thread_enter / calc_update, replacing the raw pthread_create /
// pthread_join pair with golang.org/x/sync/errgroup, the way the rest of the
// retrieval pack (gonum, syncthing, go-ethereum manifests) uses errgroup for
// exactly this "fan out, join, propagate first error" shape.
package workerpool

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fibergraph/fiberlab/coloring"
	"github.com/fibergraph/fiberlab/graph"
	"github.com/fibergraph/fiberlab/orbit"
)

// Progress is a point-in-time snapshot of a Run in flight, mirroring
// original_source/impl/legal.c's legal_orbits_calculation.
type Progress struct {
	Done    int
	Total   int
	Elapsed time.Duration
}

// Fraction returns Done/Total, or 0 when Total is 0.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}

	return float64(p.Done) / float64(p.Total)
}

// ETA estimates remaining wall-clock time from Elapsed and Fraction, ported
// from calc_update's estimated_ms formula: elapsed * (1-progress)/progress.
// Returns 0 when Fraction is effectively zero (no data to extrapolate from).
func (p Progress) ETA() time.Duration {
	frac := p.Fraction()
	if frac <= 0.001 {
		return 0
	}

	return time.Duration(float64(p.Elapsed) * (1 - frac) / frac)
}

// Options configures a Run.
type Options struct {
	Threads        int
	StopAfterFirst bool
	OnProgress     func(Progress)
}

// Option configures Options.
type Option func(*Options)

// WithThreads sets the number of concurrent workers. Threads <= 1 runs
// serially in the calling goroutine, matching find_legal_orbits's
// single-threaded fallback.
func WithThreads(n int) Option {
	return func(o *Options) { o.Threads = n }
}

// WithStopAfterFirst stops every worker as soon as any one of them finds a
// legal orbit.
func WithStopAfterFirst(stop bool) Option {
	return func(o *Options) { o.StopAfterFirst = stop }
}

// WithProgress registers a progress callback. With more than one thread, a
// separate polling goroutine invokes it every 25ms while workers run; in
// every case the calling goroutine invokes it once more with the final
// snapshot before Run returns. cmd/fiberscan is the only caller expected to
// render this.
func WithProgress(fn func(Progress)) Option {
	return func(o *Options) { o.OnProgress = fn }
}

// DefaultOptions returns the zero-value-safe default: one thread, no
// early-stop, no progress reporting.
func DefaultOptions() Options {
	return Options{Threads: 1}
}

// Run searches every coloring in cols for legal orbits, using legal.States
// and legal.Dict as the shared (read-only) legal-state table, and returns
// one orbit.Result per coloring that produced at least one legal orbit.
// Canceling ctx stops every worker at its next coloring boundary and Run
// returns ctx.Err().
//
// Workers are partitioned into contiguous ranges [i*N/T, (i+1)*N/T), one
// errgroup goroutine per range, exactly as find_legal_orbits's thread split;
// results are concatenated in worker-id order, not globally sorted.
func Run(ctx context.Context, n int, cols []coloring.Coloring, legalStates []graph.State, legalDict []bool, opts ...Option) ([]orbit.Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	threads := o.Threads
	if threads < 1 {
		threads = 1
	}

	total := len(cols)
	if total == 0 {
		return nil, nil
	}

	var stop atomic.Bool
	done := make([]int32, threads)
	perWorker := make([][]orbit.Result, threads)

	begin := time.Now()

	if threads == 1 {
		res, err := runRange(ctx, cols, 0, total, n, legalStates, legalDict, o.StopAfterFirst, &stop, &done[0])
		if err != nil {
			return nil, err
		}
		perWorker[0] = res
	} else {
		g, gctx := errgroup.WithContext(ctx)

		stopPoll := make(chan struct{})
		if o.OnProgress != nil {
			go pollProgress(done, total, begin, stopPoll, o.OnProgress)
		}

		for i := 0; i < threads; i++ {
			i := i
			from := (i * total) / threads
			to := ((i + 1) * total) / threads
			g.Go(func() error {
				res, err := runRange(gctx, cols, from, to, n, legalStates, legalDict, o.StopAfterFirst, &stop, &done[i])
				perWorker[i] = res
				return err
			})
		}

		err := g.Wait()
		close(stopPoll)
		if err != nil {
			return nil, err
		}
	}

	var results []orbit.Result
	for _, w := range perWorker {
		results = append(results, w...)
	}

	if o.OnProgress != nil {
		o.OnProgress(snapshot(done, total, begin))
	}

	return results, nil
}

func runRange(ctx context.Context, cols []coloring.Coloring, from, to, n int, legalStates []graph.State, legalDict []bool, stopAfterFirst bool, stop *atomic.Bool, numDone *int32) ([]orbit.Result, error) {
	var out []orbit.Result
	for i := from; i < to; i++ {
		if stop.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		res := orbit.Search(n, cols[i], legalStates, legalDict, stopAfterFirst)
		atomic.AddInt32(numDone, 1)

		if len(res.Seeds) > 0 {
			out = append(out, res)
			if stopAfterFirst {
				stop.Store(true)
				break
			}
		}
	}

	return out, nil
}

func pollProgress(done []int32, total int, begin time.Time, stopCh <-chan struct{}, fn func(Progress)) {
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			fn(snapshot(done, total, begin))
		}
	}
}

func snapshot(done []int32, total int, begin time.Time) Progress {
	sum := 0
	for i := range done {
		sum += int(atomic.LoadInt32(&done[i]))
	}

	return Progress{Done: sum, Total: total, Elapsed: time.Since(begin)}
}
