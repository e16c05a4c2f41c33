package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"halcyon-ops/chronoprune/pkg/cli"
	"halcyon-ops/chronoprune/pkg/policy"
)

var termsFlags struct {
	policy string
	count  int
	format string
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Show the bands a retention policy resolves to",
	Long: `Compile a retention policy and print the resolved (max age, interval)
terms, for checking what a policy actually means before using it.

Policies with a trailing multiplier produce terms forever; --count bounds how
many are shown.

Examples:
  chronoprune terms --policy w,m,y
  chronoprune terms --policy d,2x --count 12`,
	RunE: runTerms,
}

func init() {
	rootCmd.AddCommand(termsCmd)

	termsCmd.Flags().StringVarP(&termsFlags.policy, "policy", "p", "w,m,y", "retention policy")
	termsCmd.Flags().IntVarP(&termsFlags.count, "count", "n", 10, "maximum number of terms to show")
	termsCmd.Flags().StringVar(&termsFlags.format, "format", "text", "output format: text, json")
}

// termRow is one resolved term in days, the unit people reason about.
type termRow struct {
	MaxAgeDays   float64 `json:"max_age_days"`
	IntervalDays float64 `json:"interval_days"`
}

func runTerms(cmd *cobra.Command, args []string) error {
	format := cli.OutputFormat(termsFlags.format)
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}

	it, err := policy.Terms(termsFlags.policy)
	if err != nil {
		return err
	}

	var rows []termRow
	for len(rows) < termsFlags.count {
		term, ok := it.Next()
		if !ok {
			break
		}
		rows = append(rows, termRow{
			MaxAgeDays:   term.MaxAge / policy.Day,
			IntervalDays: term.Interval / policy.Day,
		})
	}
	if err := it.Err(); err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return formatter.FormatTo(os.Stdout, rows)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MAX AGE (days)\tINTERVAL (days)")
	for _, row := range rows {
		fmt.Fprintf(w, "%.2f\t%.2f\n", row.MaxAgeDays, row.IntervalDays)
	}
	if it.Infinite() {
		fmt.Fprintln(w, "...\t...")
	}
	return w.Flush()
}
