package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "chronoprune",
	Short: "chronoprune - retention-policy driven thinning of historic files",
	Long: `Chronoprune thins sets of timestamped files or directories under a
compact retention policy.

A policy is a comma-separated list of AGE[:INTERVAL] segments: items younger
than each AGE are kept at least INTERVAL apart; a trailing multiplier segment
(e.g. "2x") thins older items geometrically forever.

Examples of policies:
  w,m,y         keep everything up to a week old, then one per week up to a
                month, then one per month up to a year
  4w:1w,oo:4w   weekly copies for four weeks, then four-weekly forever
  d,2x          one band per day, each band twice as wide as the last`,
	Version:           Version,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (daemon mode)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress regular output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// setupLogging configures the default logger from the global verbosity
// flags. Daemon mode reconfigures it again from the config file.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}
