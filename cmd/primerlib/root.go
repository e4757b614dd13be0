package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/primerlib/config"
	"github.com/katalvlaran/primerlib/extract"
	"github.com/katalvlaran/primerlib/logging"
	"github.com/katalvlaran/primerlib/primer"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitInput       = 3
	exitViolation   = 4
	exitInterrupted = 130
)

// errInterrupted marks a run stopped by a signal after writing its partial
// output.
var errInterrupted = errors.New("interrupted")

// usageError marks flag and argument mistakes.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInterrupted):
		return exitInterrupted
	case errors.As(err, &ue), errors.Is(err, config.ErrInvalid), errors.Is(err, extract.ErrUnknownStrategy):
		return exitConfig
	case errors.Is(err, primer.ErrInvariantViolation):
		return exitViolation
	case errors.Is(err, primer.ErrInput), errors.Is(err, fs.ErrNotExist):
		return exitInput
	default:
		return exitFailure
	}
}

// app holds the streams and the persistent flags shared by every command.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	logLevel  string
	logFormat string
}

func (a *app) logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return nil, usageError{err}
	}
	format, err := logging.ParseFormat(a.logFormat)
	if err != nil {
		return nil, usageError{err}
	}
	return logging.New(logging.Options{Writer: a.stderr, Level: level, Format: format}), nil
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errInterrupted) {
		fmt.Fprintln(stderr, "primerlib:", err)
	}
	return exitCode(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "primerlib",
		Short:         "Select pairwise-dissimilar primer libraries from candidate pools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "auto", "log format: auto, text or json")

	root.AddCommand(
		newExtractCmd(a),
		newEdgesCmd(a),
		newGenerateCmd(a),
		newCheckCmd(a),
	)
	return root
}

// configFlags are the config-file overrides. A flag wins over the file only
// when it was set on the command line.
type configFlags struct {
	path        string
	strategy    string
	seed        int64
	length      int
	minGC       float64
	maxGC       float64
	minDistance int
	target      int
	workers     int
	cacheSize   int
	edges       string
	progress    time.Duration
}

func (f *configFlags) register(cmd *cobra.Command, withStrategy bool) {
	def := config.Default()
	fl := cmd.Flags()
	fl.StringVar(&f.path, "config", "", "YAML configuration file")
	fl.IntVar(&f.length, "length", def.SequenceLength, "sequence length")
	fl.Float64Var(&f.minGC, "min-gc", def.MinGCFraction, "minimum GC fraction")
	fl.Float64Var(&f.maxGC, "max-gc", def.MaxGCFraction, "maximum GC fraction")
	fl.IntVar(&f.minDistance, "min-distance", def.MinEditDistance, "minimum pairwise edit distance (0: 40% of length)")
	if !withStrategy {
		return
	}
	fl.IntVar(&f.workers, "workers", def.Workers, "parallel workers (0: GOMAXPROCS)")
	fl.StringVar(&f.strategy, "strategy", def.Strategy, "extraction strategy")
	fl.Int64Var(&f.seed, "seed", def.RandomSeed, "random seed")
	fl.IntVar(&f.target, "target", def.TargetCount, "target library size")
	fl.IntVar(&f.cacheSize, "cache-size", def.DistanceCacheSize, "greedy distance cache capacity (0 disables)")
	fl.StringVar(&f.edges, "edges", "", "precomputed edge list (.bin for binary)")
	fl.DurationVar(&f.progress, "progress", def.ProgressInterval, "progress log interval (0 disables)")
}

// load reads the config file (or defaults), applies the changed flags and
// validates the result.
func (f *configFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.path != "" {
		var err error
		if cfg, err = config.Load(f.path); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if changed("seed") {
		cfg.RandomSeed = f.seed
	}
	if changed("length") {
		cfg.SequenceLength = f.length
	}
	if changed("min-gc") {
		cfg.MinGCFraction = f.minGC
	}
	if changed("max-gc") {
		cfg.MaxGCFraction = f.maxGC
	}
	if changed("min-distance") {
		cfg.MinEditDistance = f.minDistance
	}
	if changed("target") {
		cfg.TargetCount = f.target
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("cache-size") {
		cfg.DistanceCacheSize = f.cacheSize
	}
	if changed("edges") {
		cfg.UsePrecomputedEdges = f.edges != ""
		cfg.EdgesFile = f.edges
	}
	if changed("progress") {
		cfg.ProgressInterval = f.progress
	}

	return cfg, cfg.Validate()
}
