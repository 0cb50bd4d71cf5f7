package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	gserrors "github.com/vango-dev/globalstate/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a command failure. Errors without a code, such as
// cobra flag parsing errors, are reported as E202.
func printError(w io.Writer, err error) {
	gserrors.Print(w, gserrors.FromError(err, "E202"))
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "globalstate-bench",
		Short: "Exercise globalstate fan-out",
		Long: `globalstate-bench mounts many views on one shared store and measures
how long it takes to deliver updates to all of them.

  run    one-shot benchmark, prints a summary
  serve  continuous updates with Prometheus metrics on /metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		runCmd(),
		serveCmd(),
		versionCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "Version: %s\nCommit:  %s\nBuilt:   %s\n", version, commit, date)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
