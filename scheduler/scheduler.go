// Package scheduler runs package fibering's whole pipeline over a stream of
// graphs, spread across a bounded set of queues so one slow graph doesn't
// stall the others, and appends every fibering graph to a results file as
// it's found.
//
// Grounded on original_source/impl/fibering_multi.c's fibering_queue /
// fibering_scheduler / queue_run / add_to_scheduler / scheduler_finish: one
// dedicated consumer goroutine per queue runs fibering.GraphFiberings on one
// graph at a time, exactly as queue_run does; the hand-rolled ring buffer
// (start/end indices, a busy-sleep producer) is replaced by a buffered Go
// channel, since a bounded channel already is the single-producer/
// single-consumer ring the C code built by hand.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fibergraph/fiberlab/fibering"
	"github.com/fibergraph/fiberlab/graph"
	"github.com/fibergraph/fiberlab/graph6"
)

// Job is one graph submitted to the Scheduler for fibering analysis.
type Job struct {
	Graph   *graph.Graph
	Cliques graph.CliqueList
}

// Stats accumulates the outcome of a Scheduler's run, mirroring
// original_source/impl/fibering_multi.c's stream_result.
type Stats struct {
	Checked        int
	Fibering       int
	FiberingGraphs []*graph.Graph
}

// Scheduler fans a stream of Jobs out across NumQueues worker goroutines,
// each processing one Job at a time end to end.
type Scheduler struct {
	n             int
	queues        []chan Job
	threadsPerJob int
	resultsFile   *os.File
	fileMu        sync.Mutex

	wg    sync.WaitGroup
	mu    sync.Mutex
	stats Stats
	next  int
}

// Options configures a New Scheduler.
type Options struct {
	NumQueues        int
	CapacityPerQueue int
	ThreadsPerJob    int
	ResultsPath      string
}

// Option configures Options.
type Option func(*Options)

// WithNumQueues sets the number of concurrent queues (consumer goroutines).
func WithNumQueues(n int) Option { return func(o *Options) { o.NumQueues = n } }

// WithCapacityPerQueue sets each queue's channel buffer size.
func WithCapacityPerQueue(n int) Option { return func(o *Options) { o.CapacityPerQueue = n } }

// WithThreadsPerJob sets the worker-pool thread count fibering.GraphFiberings
// uses internally for each job.
func WithThreadsPerJob(n int) Option { return func(o *Options) { o.ThreadsPerJob = n } }

// WithResultsPath appends one graph6 line per fibering graph to the named
// file, opened in append mode, writes guarded by a mutex exactly as
// queue_run's fputs/fflush pair under pthread_mutex_lock is.
func WithResultsPath(path string) Option { return func(o *Options) { o.ResultsPath = path } }

// DefaultOptions returns a single-queue, single-threaded-per-job, no-file
// default.
func DefaultOptions() Options {
	return Options{NumQueues: 1, CapacityPerQueue: 8, ThreadsPerJob: 1}
}

// New creates a Scheduler for graphs of size n and starts its consumer
// goroutines. If opts requests a results path and the file can't be opened,
// New returns an error: a missing results file is fatal at construction
// rather than discovered partway through a run.
func New(ctx context.Context, n int, opts ...Option) (*Scheduler, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if o.NumQueues < 1 {
		o.NumQueues = 1
	}

	s := &Scheduler{n: n, threadsPerJob: o.ThreadsPerJob}

	if o.ResultsPath != "" {
		f, err := os.OpenFile(o.ResultsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("scheduler: opening results file: %w", err)
		}
		s.resultsFile = f
	}

	s.queues = make([]chan Job, o.NumQueues)
	for i := range s.queues {
		s.queues[i] = make(chan Job, o.CapacityPerQueue)
		s.wg.Add(1)
		go s.runQueue(ctx, s.queues[i])
	}

	return s, nil
}

// Enqueue submits a job to the least-recently-used queue with room,
// round-robin, blocking if every queue is momentarily full -- the Go
// equivalent of add_to_scheduler's spin-and-sleep producer, expressed as a
// channel send.
func (s *Scheduler) Enqueue(job Job) {
	s.mu.Lock()
	start := s.next
	s.next++
	s.mu.Unlock()

	for i := 0; i < len(s.queues); i++ {
		select {
		case s.queues[(start+i)%len(s.queues)] <- job:
			return
		default:
		}
	}

	s.queues[start%len(s.queues)] <- job
}

// Finish signals that no more jobs will be enqueued, waits for every queue
// to drain, closes the results file if one was opened, and returns the
// accumulated Stats.
func (s *Scheduler) Finish() Stats {
	for _, q := range s.queues {
		close(q)
	}
	s.wg.Wait()

	if s.resultsFile != nil {
		s.resultsFile.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}

func (s *Scheduler) runQueue(ctx context.Context, queue chan Job) {
	defer s.wg.Done()

	for job := range queue {
		res, err := fibering.GraphFiberings(ctx, job.Graph, job.Cliques,
			fibering.WithThreads(s.threadsPerJob), fibering.WithSingleOrbit(true))

		s.mu.Lock()
		s.stats.Checked++
		fibers := err == nil && res.Fibers
		if fibers {
			s.stats.Fibering++
			s.stats.FiberingGraphs = append(s.stats.FiberingGraphs, job.Graph)
		}
		s.mu.Unlock()

		if fibers && s.resultsFile != nil {
			s.writeResult(job.Graph)
		}
	}
}

func (s *Scheduler) writeResult(g *graph.Graph) {
	line := graph6.Encode(g, graph6.OrderColumnMajor)

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if _, err := s.resultsFile.WriteString(line + "\n"); err != nil {
		return // a write failure here must not corrupt the in-memory Stats
	}
	s.resultsFile.Sync()
}
