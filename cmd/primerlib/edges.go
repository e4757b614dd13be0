package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/primerlib/conflict"
	"github.com/katalvlaran/primerlib/core"
	"github.com/katalvlaran/primerlib/metrics"
	"github.com/katalvlaran/primerlib/primer"
)

type edgesFlags struct {
	cfg    configFlags
	pool   string
	out    string
	binary bool
}

func newEdgesCmd(a *app) *cobra.Command {
	f := &edgesFlags{}
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Precompute the conflict edge list of a pool",
		Long: `Precompute the conflict edge list of a pool for later use with
extract --edges. Edges are streamed to the file in (i, j) order; the binary
format is used with --binary or when the file name ends in .bin. Streaming
runs on a single goroutine, so there is no --workers flag. An interrupted
run removes the incomplete file.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return runEdges(cmd, a, f) },
	}
	f.cfg.register(cmd, false)
	cmd.Flags().StringVar(&f.pool, "pool", "", "candidate pool file (required)")
	cmd.Flags().StringVar(&f.out, "out", "", "edge list file (required)")
	cmd.Flags().BoolVar(&f.binary, "binary", false, "write the binary format")
	return cmd
}

func runEdges(cmd *cobra.Command, a *app, f *edgesFlags) error {
	if f.pool == "" || f.out == "" {
		return usageError{errors.New("--pool and --out are required")}
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

	file, err := os.Create(f.out)
	if err != nil {
		return err
	}
	w, err := conflict.NewWriter(file, f.binary || conflict.IsBinaryPath(f.out))
	if err != nil {
		file.Close()
		return err
	}

	var (
		ctx   = cmd.Context()
		count int64
		rows  = int64(max(len(pool)-1, 0))
		rep   = metrics.NewReporter(log, "edges", rows, cfg.ProgressInterval)
	)
	err = conflict.Stream(ctx, pool, cfg.Threshold(), func(e core.Edge) error {
		count++
		return w.WriteEdge(e)
	}, conflict.WithProgress(func(done, _ int64) { rep.Update(done) }))
	if err == nil {
		err = w.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.out)
		if ctx.Err() != nil {
			log.Warn("interrupted; incomplete edge list removed", slog.String("path", f.out))
			return errInterrupted
		}
		return fmt.Errorf("write edges: %w", err)
	}
	rep.Done(rows)

	log.Info("edge list written",
		slog.String("path", f.out),
		slog.Int("nodes", len(pool)),
		slog.Int64("edges", count),
		slog.Int("threshold", cfg.Threshold()),
	)
	fmt.Fprintf(a.stdout, "%s: %d edges over %d candidates\n", f.out, count, len(pool))
	return nil
}
