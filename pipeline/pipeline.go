// Package pipeline runs one extraction end to end: configuration check,
// conflict graph, strategy, post-hoc library check and report.
//
// Run is the only entry point. It owns no global state; everything it needs
// arrives through the Config value and the options.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/primerlib/config"
	"github.com/katalvlaran/primerlib/conflict"
	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/extract"
	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/logging"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

// Report is the outcome of one run.
type Report struct {
	RunID    string
	Strategy extract.Name

	// Indices are the accepted pool positions in acceptance order and
	// Selected the matching sequences.
	Indices  []int
	Selected []primer.Sequence

	// Truncated is set when cancellation stopped the run early.
	Truncated bool

	TargetCount   int
	TargetReached bool

	Elapsed time.Duration
	Metrics metrics.Snapshot

	// GraphNodes and GraphEdges describe the conflict graph; both are zero
	// for strategies that do not use one.
	GraphNodes int
	GraphEdges int

	// Cache holds distance cache statistics when a cache was used.
	Cache *levenshtein.CacheStats

	// Violation is the post-hoc check result: nil, or a *primer.ViolationError.
	Violation error
}

type options struct {
	log      *slog.Logger
	run      *metrics.Run
	runID    string
	onAccept func(idx int)
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger; the default discards.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics makes Run record into run instead of a private Run.
func WithMetrics(run *metrics.Run) Option {
	return func(o *options) { o.run = run }
}

// WithRunID fixes the run identifier; the default is a fresh UUID.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithOnAccept registers a hook called with every accepted index.
func WithOnAccept(fn func(idx int)) Option {
	return func(o *options) { o.onAccept = fn }
}

// Run extracts a library from pool according to cfg.
//
// Errors: config.ErrInvalid (before any work), primer.ErrInput and its
// children for unusable pools or edge files. Cancellation is not an error:
// the report carries what was accepted and Truncated is set. A library that
// fails its own constraints is reported through Report.Violation.
func Run(ctx context.Context, cfg config.Config, pool primer.Pool, opts ...Option) (Report, error) {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if err := pool.Validate(); err != nil {
		return Report{}, err
	}
	if o.runID == "" {
		o.runID = logging.NewRunID()
	}
	if o.run == nil {
		o.run = metrics.New()
	}

	name := cfg.StrategyName()
	strategy, err := extract.New(name)
	if err != nil {
		return Report{}, err
	}

	var (
		log       = logging.ForRun(o.log, o.runID, string(name))
		threshold = cfg.Threshold()
		rep       = Report{RunID: o.runID, Strategy: name, TargetCount: cfg.TargetCount}
		oracle    levenshtein.Oracle
		cache     *levenshtein.Cached
	)
	if name == extract.Greedy && cfg.DistanceCacheSize > 0 {
		cache = levenshtein.NewCached(levenshtein.Exact{}, cfg.DistanceCacheSize)
		oracle = cache
	} else {
		oracle = levenshtein.Exact{}
	}

	log.Info("run started",
		slog.Int("pool", len(pool)),
		slog.Int("length", cfg.SequenceLength),
		slog.Int("threshold", threshold),
		slog.Int("target", cfg.TargetCount),
	)
	o.run.Start()
	defer o.run.Stop()

	var g *core.Graph
	if strategy.NeedsGraph() {
		g, err = graphFor(ctx, cfg, pool, threshold, o.run, log)
		switch {
		case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
			log.Warn("cancelled while building the conflict graph")
			rep.Truncated = true
			o.run.Stop()
			return finish(rep, o.run, cfg, log), nil
		case err != nil:
			return Report{}, err
		}
		rep.GraphNodes, rep.GraphEdges = g.Len(), g.EdgeCount()
	}

	extractRep := metrics.NewReporter(log, "extract", int64(cfg.TargetCount), cfg.ProgressInterval)
	var accepted int64
	res, err := strategy.Extract(ctx, extract.Input{
		Pool:        pool,
		Graph:       g,
		Threshold:   threshold,
		Constraints: cfg.Constraints(),
		Oracle:      oracle,
		Seed:        cfg.RandomSeed,
		Workers:     cfg.Workers,
		Metrics:     o.run,
		OnAccept: func(idx int) {
			accepted++
			extractRep.Update(accepted)
			if o.onAccept != nil {
				o.onAccept(idx)
			}
		},
	})
	if err != nil {
		return Report{}, err
	}
	extractRep.Done(int64(len(res.Indices)))
	o.run.Stop()

	rep.Indices = res.Indices
	rep.Selected = pool.Select(res.Indices)
	rep.Truncated = res.Truncated
	rep.Violation = primer.CheckLibrary(rep.Selected, cfg.Constraints(), threshold, levenshtein.Exact{})
	if cache != nil {
		st := cache.Stats()
		rep.Cache = &st
		log.Debug("distance cache",
			slog.Int("len", st.Len),
			slog.Uint64("hits", st.Hits),
			slog.Uint64("misses", st.Misses),
			slog.Uint64("evictions", st.Evictions),
		)
	}

	return finish(rep, o.run, cfg, log), nil
}

func graphFor(ctx context.Context, cfg config.Config, pool primer.Pool, threshold int, run *metrics.Run, log *slog.Logger) (*core.Graph, error) {
	if cfg.UsePrecomputedEdges {
		g, err := conflict.Load(cfg.EdgesFile, len(pool))
		if err != nil {
			return nil, err
		}
		log.Info("conflict graph loaded", slog.String("path", cfg.EdgesFile), slog.Int("edges", g.EdgeCount()))
		return g, nil
	}

	rows := int64(max(len(pool)-1, 0))
	rep := metrics.NewReporter(log, "conflict-graph", rows, cfg.ProgressInterval)
	g, err := conflict.Build(ctx, pool, threshold,
		conflict.WithWorkers(cfg.Workers),
		conflict.WithMetrics(run),
		conflict.WithProgress(func(done, _ int64) { rep.Update(done) }),
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline: build conflict graph: %w", err)
	}
	rep.Done(rows)
	log.Info("conflict graph built", slog.Int("nodes", g.Len()), slog.Int("edges", g.EdgeCount()))

	return g, nil
}

func finish(rep Report, run *metrics.Run, cfg config.Config, log *slog.Logger) Report {
	rep.Metrics = run.Snapshot()
	rep.Elapsed = rep.Metrics.Elapsed
	rep.TargetReached = len(rep.Indices) >= cfg.TargetCount

	attrs := []any{
		slog.Int("selected", len(rep.Indices)),
		slog.Bool("target_reached", rep.TargetReached),
		slog.Bool("truncated", rep.Truncated),
		slog.Duration("elapsed", rep.Elapsed),
		slog.Duration("cpu", rep.Metrics.CPU),
		slog.Float64("throughput", rep.Metrics.Throughput),
		slog.Int64("rejected_composition", rep.Metrics.RejectedComposition),
		slog.Int64("rejected_distance", rep.Metrics.RejectedDistance),
	}
	if rep.Violation != nil {
		log.Error("library check failed", slog.Any("error", rep.Violation))
	}
	log.Info("run complete", attrs...)

	return rep
}
