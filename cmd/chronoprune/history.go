package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"halcyon-ops/chronoprune/pkg/cli"
	"halcyon-ops/chronoprune/pkg/config"
	"halcyon-ops/chronoprune/pkg/history"
)

var historyFlags struct {
	dbPath string
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent purge runs",
	Long: `List recent purge runs recorded by the daemon's history store.

Examples:
  chronoprune history --db chronoprune-history.db
  chronoprune history --db chronoprune-history.db --limit 100 --format json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.dbPath, "db", config.DefaultDBPath, "history database path")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format := cli.OutputFormat(historyFlags.format)
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}

	store, err := history.Open(historyFlags.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	records, err := store.ListRuns(context.Background(), historyFlags.limit)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return formatter.FormatTo(os.Stdout, records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTARGET\tPOLICY\tSCANNED\tKEPT\tDISCARDED\tREMOVED\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.StartedAt.Format(time.RFC3339),
			r.Target,
			r.Policy,
			r.Scanned,
			r.Kept,
			r.Discarded,
			r.Removed,
			r.Status,
		)
	}
	return w.Flush()
}
