// Package metrics accumulates per-run counters and exposes them for progress
// reporting and diagnostics.
//
// A Run is a passive accumulator: strategies and the graph builder feed it,
// the caller reads a Snapshot at the end. Every method is safe for concurrent
// use and safe on a nil *Run, so library code may record unconditionally.
//
// Counters are atomics; only the (elapsed, count) series append takes a short
// lock. Nothing here blocks on I/O.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Observation is one point of the acceptance series.
type Observation struct {
	Elapsed time.Duration
	Count   int64
}

// Run holds the counters of one extraction run.
type Run struct {
	iterations    atomic.Int64
	rejectedComp  atomic.Int64
	rejectedDist  atomic.Int64
	accepted      atomic.Int64
	seriesEnabled bool

	mu       sync.Mutex
	started  time.Time
	stopped  time.Time
	cpuStart time.Duration
	cpuStop  time.Duration
	series   []Observation

	now func() time.Time
	cpu func() time.Duration
}

// Option configures a Run.
type Option func(*Run)

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Run) { r.now = now }
}

// WithCPUClock replaces the process CPU-time source; used by tests.
func WithCPUClock(cpu func() time.Duration) Option {
	return func(r *Run) { r.cpu = cpu }
}

// WithoutSeries disables the per-acceptance series.
func WithoutSeries() Option {
	return func(r *Run) { r.seriesEnabled = false }
}

// New returns a Run whose clock starts immediately.
func New(opts ...Option) *Run {
	r := &Run{now: time.Now, cpu: processCPU, seriesEnabled: true}
	for _, o := range opts {
		o(r)
	}
	r.started = r.now()
	r.cpuStart = r.cpu()

	return r
}

// Start resets the clock origin and clears a previous Stop.
func (r *Run) Start() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.started = r.now()
	r.stopped = time.Time{}
	r.cpuStart = r.cpu()
	r.mu.Unlock()
}

// Stop freezes Elapsed and CPU at the current instant.
func (r *Run) Stop() {
	if r == nil {
		return
	}
	r.mu.Lock()
	if r.stopped.IsZero() {
		r.stopped = r.now()
		r.cpuStop = r.cpu()
	}
	r.mu.Unlock()
}

// AddIterations adds n units of work (rows, steps, search nodes).
func (r *Run) AddIterations(n int64) {
	if r == nil {
		return
	}
	r.iterations.Add(n)
}

// RejectComposition counts a candidate refused for length or GC content.
func (r *Run) RejectComposition() {
	if r == nil {
		return
	}
	r.rejectedComp.Add(1)
}

// RejectDistance counts a candidate refused for being too close to another.
func (r *Run) RejectDistance() {
	if r == nil {
		return
	}
	r.rejectedDist.Add(1)
}

// Accept counts one selected candidate and records the series point.
func (r *Run) Accept() {
	if r == nil {
		return
	}
	n := r.accepted.Add(1)
	if !r.seriesEnabled {
		return
	}
	r.mu.Lock()
	r.series = append(r.series, Observation{Elapsed: r.now().Sub(r.started), Count: n})
	r.mu.Unlock()
}

// Accepted returns the current accepted count.
func (r *Run) Accepted() int64 {
	if r == nil {
		return 0
	}
	return r.accepted.Load()
}

// Elapsed returns wall time since Start (or until Stop).
func (r *Run) Elapsed() time.Duration {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.elapsedLocked()
}

// CPU returns the process CPU time (user plus system) consumed since Start
// (or until Stop). It covers every goroutine of the process, not only the
// ones working for this Run.
func (r *Run) CPU() time.Duration {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cpuLocked()
}

func (r *Run) cpuLocked() time.Duration {
	if !r.stopped.IsZero() {
		return r.cpuStop - r.cpuStart
	}
	return r.cpu() - r.cpuStart
}

func (r *Run) elapsedLocked() time.Duration {
	if !r.stopped.IsZero() {
		return r.stopped.Sub(r.started)
	}
	return r.now().Sub(r.started)
}

// Snapshot is a point-in-time copy of a Run.
type Snapshot struct {
	Iterations          int64
	RejectedComposition int64
	RejectedDistance    int64
	Accepted            int64

	// Elapsed is wall time. CPU is process CPU time over the same span; it
	// is zero where the platform offers no per-process accounting.
	Elapsed time.Duration
	CPU     time.Duration

	// Throughput is accepted candidates per second of wall time.
	Throughput float64
	Series     []Observation
}

// Snapshot copies the counters. Concurrent producers may be reflected
// partially; the copy is internally consistent for the series only.
func (r *Run) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	s := Snapshot{
		Elapsed: r.elapsedLocked(),
		CPU:     r.cpuLocked(),
		Series:  append([]Observation(nil), r.series...),
	}
	r.mu.Unlock()

	s.Iterations = r.iterations.Load()
	s.RejectedComposition = r.rejectedComp.Load()
	s.RejectedDistance = r.rejectedDist.Load()
	s.Accepted = r.accepted.Load()
	if sec := s.Elapsed.Seconds(); sec > 0 {
		s.Throughput = float64(s.Accepted) / sec
	}

	return s
}
