package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/primerlib/library"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/pipeline"
	"github.com/katalvlaran/primerlib/primer"
)

type extractFlags struct {
	cfg      configFlags
	pool     string
	out      string
	series   bool
	textfile string
}

func newExtractCmd(a *app) *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Select a library from a candidate pool",
		Long: `Select a library from a candidate pool and write it to
<out>/<YYYYmmdd-HHMMSS>-<strategy>.txt.

An interrupt stops the strategy cooperatively; the partial library is still
written and checked.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return runExtract(cmd, a, f) },
	}
	f.cfg.register(cmd, true)
	cmd.Flags().StringVar(&f.pool, "pool", "", "candidate pool file, one sequence per line (required)")
	cmd.Flags().StringVar(&f.out, "out", "data", "output directory")
	cmd.Flags().BoolVar(&f.series, "series", false, "also write the (elapsed, count) series as TSV")
	cmd.Flags().StringVar(&f.textfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	return cmd
}

func runExtract(cmd *cobra.Command, a *app, f *extractFlags) error {
	if f.pool == "" {
		return usageError{errors.New("--pool is required")}
	}
	log, err := a.logger()
	if err != nil {
		return err
	}
	cfg, err := f.cfg.load(cmd)
	if err != nil {
		return err
	}
	pool, err := primer.LoadPool(f.pool)
	if err != nil {
		return err
	}

	run := metrics.New()
	rep, err := pipeline.Run(cmd.Context(), cfg, pool,
		pipeline.WithLogger(log),
		pipeline.WithMetrics(run),
	)
	if err != nil {
		return err
	}

	path, err := library.WriteFile(f.out, string(rep.Strategy), time.Now(), rep.Elapsed, rep.Selected)
	if err != nil {
		return err
	}
	log.Info("library written", slog.String("path", path), slog.String("run_id", rep.RunID))
	fmt.Fprintln(a.stdout, path)

	if f.series {
		sp, err := library.WriteSeriesFile(path, rep.Metrics.Series)
		if err != nil {
			return err
		}
		log.Info("series written", slog.String("path", sp))
	}
	if f.textfile != "" {
		c := metrics.NewCollector(run, rep.RunID, string(rep.Strategy))
		if err := metrics.WriteTextfile(f.textfile, c); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	fmt.Fprintf(a.stdout, "selected %d of %d (target %d, reached %t) in %s\n",
		len(rep.Indices), len(pool), rep.TargetCount, rep.TargetReached, rep.Elapsed.Round(time.Millisecond))

	switch {
	case rep.Violation != nil:
		return rep.Violation
	case rep.Truncated:
		log.Warn("run interrupted; partial library written", slog.String("path", path))
		return errInterrupted
	}
	return nil
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected arguments %q", args)}
	}
	return nil
}
