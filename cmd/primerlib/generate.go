package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/primerlib/config"
	"github.com/katalvlaran/primerlib/generate"
	"github.com/katalvlaran/primerlib/library"
	"github.com/katalvlaran/primerlib/logging"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

type generateFlags struct {
	count   int
	out     string
	seed    int64
	length  int
	minGC   float64
	maxGC   float64
	uniform bool

	// Online library mode.
	target        int
	mode          string
	minDistance   int
	maxIterations int64
	dir           string
	series        bool
	textfile      string
	progress      time.Duration
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random candidate pool or grow a library online",
		Long: `With --count, write a random candidate pool, one sequence per line. By
default every sequence has an admissible GC content; --uniform draws every
base uniformly.

With --target, grow a library without a pool: draw a candidate, reject it
on GC content or on distance to an accepted sequence, and repeat until the
library holds --target sequences. --mode picks the sampler: uniform,
balanced-gc, frequencies (inverse per-position base frequency, redrawn
until the GC content fits) or frequencies-no-reroll. The library is written
to <dir>/<YYYYmmdd-HHMMSS>-online-<mode>.txt; an interrupt or
--max-iterations writes the partial library.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.target > 0 {
				return runOnline(cmd.Context(), a, f)
			}
			return runGenerate(a, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.count, "count", 0, "number of pool sequences")
	fl.StringVar(&f.out, "out", "-", "pool output file; - for stdout")
	fl.Int64Var(&f.seed, "seed", def.RandomSeed, "random seed")
	fl.IntVar(&f.length, "length", def.SequenceLength, "sequence length")
	fl.Float64Var(&f.minGC, "min-gc", def.MinGCFraction, "minimum GC fraction")
	fl.Float64Var(&f.maxGC, "max-gc", def.MaxGCFraction, "maximum GC fraction")
	fl.BoolVar(&f.uniform, "uniform", false, "ignore the GC bounds")

	fl.IntVar(&f.target, "target", 0, "grow a library of this many sequences instead of a pool")
	fl.StringVar(&f.mode, "mode", string(generate.Balanced), "online sampler")
	fl.IntVar(&f.minDistance, "min-distance", def.MinEditDistance, "minimum pairwise edit distance (0: 40% of length)")
	fl.Int64Var(&f.maxIterations, "max-iterations", 0, "stop after this many candidates (0: no limit)")
	fl.StringVar(&f.dir, "dir", "data", "library output directory")
	fl.BoolVar(&f.series, "series", false, "also write the (elapsed, count) series as TSV")
	fl.StringVar(&f.textfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	fl.DurationVar(&f.progress, "progress", def.ProgressInterval, "progress log interval (0 disables)")
	return cmd
}

func (f *generateFlags) constraints() primer.Constraints {
	return primer.Constraints{Length: f.length, MinGC: f.minGC, MaxGC: f.maxGC}
}

func runGenerate(a *app, f *generateFlags) error {
	if f.count <= 0 {
		return usageError{errors.New("one of --count or --target must be positive")}
	}
	if f.length <= 0 {
		return usageError{errors.New("--length must be positive")}
	}
	log, err := a.logger()
	if err != nil {
		return err
	}

	var pool primer.Pool
	if f.uniform {
		pool, err = generate.RandomPool(f.count, f.length, f.seed)
	} else {
		pool, err = generate.Pool(f.count, f.constraints(), f.seed)
	}
	if err != nil {
		return usageError{err}
	}

	if f.out == "-" {
		return writePool(a.stdout, pool)
	}
	file, err := os.Create(f.out)
	if err != nil {
		return err
	}
	err = writePool(file, pool)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write pool: %w", err)
	}
	log.Info("pool written", slog.String("path", f.out), slog.Int("count", len(pool)))
	return nil
}

func runOnline(ctx context.Context, a *app, f *generateFlags) error {
	if f.count > 0 {
		return usageError{errors.New("--count and --target are mutually exclusive")}
	}
	if f.length <= 0 {
		return usageError{errors.New("--length must be positive")}
	}
	if f.minDistance < 0 || f.minDistance > f.length {
		return usageError{fmt.Errorf("--min-distance must lie in [0, %d]", f.length)}
	}
	mode, err := generate.ParseMode(f.mode)
	if err != nil {
		return usageError{err}
	}
	log, err := a.logger()
	if err != nil {
		return err
	}
	runID := logging.NewRunID()
	strategy := "online-" + string(mode)
	log = logging.ForRun(log, runID, strategy)

	threshold := f.minDistance
	if threshold == 0 {
		threshold = primer.DefaultThreshold(f.length)
	}
	var (
		run = metrics.New()
		rep = metrics.NewReporter(log, "generate", int64(f.target), f.progress)
	)
	res, err := generate.Online(ctx, f.target, f.constraints(), threshold,
		generate.WithMode(mode),
		generate.WithSeed(f.seed),
		generate.WithMaxIterations(f.maxIterations),
		generate.WithMetrics(run),
		generate.WithOnAccept(func(_ primer.Sequence, n int) { rep.Update(int64(n)) }),
	)
	if err != nil {
		return usageError{err}
	}
	rep.Done(int64(len(res.Sequences)))
	snap := run.Snapshot()

	path, err := library.WriteFile(f.dir, strategy, time.Now(), snap.Elapsed, res.Sequences)
	if err != nil {
		return err
	}
	log.Info("library written", slog.String("path", path),
		slog.Int("selected", len(res.Sequences)),
		slog.Int64("iterations", snap.Iterations),
		slog.Int64("rejected_composition", snap.RejectedComposition),
		slog.Int64("rejected_distance", snap.RejectedDistance),
		slog.Duration("elapsed", snap.Elapsed),
		slog.Duration("cpu", snap.CPU),
	)
	fmt.Fprintln(a.stdout, path)

	if f.series {
		sp, err := library.WriteSeriesFile(path, snap.Series)
		if err != nil {
			return err
		}
		log.Info("series written", slog.String("path", sp))
	}
	if f.textfile != "" {
		if err := metrics.WriteTextfile(f.textfile, metrics.NewCollector(run, runID, strategy)); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	fmt.Fprintf(a.stdout, "generated %d of %d in %d iterations (%d GC, %d distance rejects) in %s\n",
		len(res.Sequences), f.target, snap.Iterations, snap.RejectedComposition, snap.RejectedDistance,
		snap.Elapsed.Round(time.Millisecond))

	if res.Truncated && ctx.Err() != nil {
		log.Warn("run interrupted; partial library written", slog.String("path", path))
		return errInterrupted
	}
	return nil
}

func writePool(w io.Writer, pool primer.Pool) error {
	bw := bufio.NewWriter(w)
	for _, s := range pool {
		bw.WriteString(s)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
