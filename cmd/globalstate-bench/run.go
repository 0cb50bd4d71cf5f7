package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/globalstate/pkg/telemetry"
)

func runCmd() *cobra.Command {
	var (
		cfg     benchConfig
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a one-shot fan-out benchmark",
		Long: `Mount --views views on one store, apply --sets increments and
re-render after each one.

Examples:
  globalstate-bench run
  globalstate-bench run --views=10000 --sets=100
  globalstate-bench run --suspendable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			res, err := runBench(cfg, logger, telemetry.Nop())
			if err != nil {
				return err
			}
			res.print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Views, "views", 1000, "Number of views reading the store")
	cmd.Flags().IntVar(&cfg.Sets, "sets", 1000, "Number of updates to apply")
	cmd.Flags().BoolVar(&cfg.Suspendable, "suspendable", false, "Start with no value and read through the suspend handler")
	cmd.Flags().BoolVar(&cfg.Isolate, "isolate", false, "Recover observer panics during broadcast")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
