package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/primerlib/levenshtein"
	"github.com/katalvlaran/primerlib/library"
	"github.com/katalvlaran/primerlib/primer"
)

func newCheckCmd(a *app) *cobra.Command {
	f := &configFlags{}
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Verify a written library against the constraints",
		Long: `Verify that every sequence of a library file has the configured length
and GC content and that every pair is at least the minimum edit distance
apart. Exits with status 4 on the first violation.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("check takes one library file, got %d arguments", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			lib, err := library.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := primer.CheckLibrary(lib.Sequences, cfg.Constraints(), cfg.Threshold(), levenshtein.Exact{}); err != nil {
				return err
			}
			msg := fmt.Sprintf("ok: %d sequences, length %d, minimum distance %d", len(lib.Sequences), cfg.SequenceLength, cfg.Threshold())
			if lib.Elapsed >= 0 {
				msg += fmt.Sprintf(", selected in %s", lib.Elapsed.Round(time.Millisecond))
			}
			fmt.Fprintln(a.stdout, msg)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
