// Package main provides the entry point for the hllcount CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clarkduvall/hyperloglog/cmd/hllcount/commands"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	globals := &commands.Globals{}

	rootCmd := &cobra.Command{
		Use:   "hllcount",
		Short: "Approximate distinct counting with HyperLogLog",
		Long: `hllcount estimates the number of distinct lines in its input using a
fixed amount of memory, and persists estimator state so that counts taken
separately can be merged later.

Commands:
  count     Estimate distinct lines in files or stdin
  merge     Merge saved estimator states
  inspect   Describe a saved estimator state`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.ConfigPath, "config", "", "config file (default: ./hllcount.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globals.Quiet, "quiet", "q", false, "suppress log output")

	rootCmd.AddCommand(commands.NewCountCommand(globals))
	rootCmd.AddCommand(commands.NewMergeCommand(globals))
	rootCmd.AddCommand(commands.NewInspectCommand(globals))
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// Restore default signal handling once canceled so a second interrupt
	// kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hllcount %s (commit: %s)\n", version, commit)
		},
	}
}
