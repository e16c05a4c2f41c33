package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"halcyon-ops/chronoprune/pkg/cli"
	"halcyon-ops/chronoprune/pkg/purge"
	"halcyon-ops/chronoprune/pkg/retain"
	"halcyon-ops/chronoprune/pkg/timestamp"
)

var planFlags struct {
	policy     string
	leeway     string
	remove     bool
	showKept   bool
	noErrs     bool
	glob       bool
	useMtime   bool
	useAtime   bool
	useCtime   bool
	timeLayout string
	leafOnly   bool
	format     string
}

var planCmd = &cobra.Command{
	Use:   "plan [flags] NAME...",
	Short: "Partition items into keep and discard sets",
	Long: `Partition the named files or directories into keep and discard sets
under a retention policy, and optionally remove the discard set.

Names are taken from the arguments; a single "-" argument mixes in names read
from standard input, one per line. By default the discard list is printed;
nothing is deleted unless --rm is given.

Item timestamps come from file metadata (change time by default) or, with
--time-pattern, from the name itself using a Go time layout.

Examples:
  # Show what a weekly/monthly/yearly policy would remove
  chronoprune plan --policy w,m,y '/backups/*.tgz' --glob

  # Thin dated directories by the date in their name
  chronoprune plan --time-pattern 2006-01-02 --leaf-only --rm /snaps/*

  # Pipe names in from elsewhere
  find /var/backups -name '*.sql.gz' | chronoprune plan --policy 4w:1w,oo:4w -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planFlags.policy, "policy", "p", "w,m,y", "retention policy")
	planCmd.Flags().StringVarP(&planFlags.leeway, "leeway", "l", retain.DefaultLeeway, "leeway for spacing comparisons")
	planCmd.Flags().BoolVar(&planFlags.remove, "rm", false, "remove items rather than listing them")
	planCmd.Flags().BoolVar(&planFlags.showKept, "show-kept", false, "print the items to be kept instead")
	planCmd.Flags().BoolVarP(&planFlags.noErrs, "no-errs", "Q", false, "do not report errors when removal fails")
	planCmd.Flags().BoolVarP(&planFlags.glob, "glob", "g", false, "expand shell wildcards in names")
	planCmd.Flags().BoolVarP(&planFlags.useCtime, "ctime", "C", false, "use file change time (default)")
	planCmd.Flags().BoolVarP(&planFlags.useMtime, "mtime", "m", false, "use file modification time")
	planCmd.Flags().BoolVarP(&planFlags.useAtime, "atime", "a", false, "use file access time")
	planCmd.Flags().StringVarP(&planFlags.timeLayout, "time-pattern", "t", "", "parse the timestamp from the name with a Go time layout")
	planCmd.Flags().BoolVarP(&planFlags.leafOnly, "leaf-only", "L", false, "match the time pattern against the leaf name only")
	planCmd.Flags().StringVar(&planFlags.format, "format", "text", "output format: text, json")

	planCmd.MarkFlagsMutuallyExclusive("rm", "show-kept")
	planCmd.MarkFlagsMutuallyExclusive("ctime", "mtime", "atime", "time-pattern")
}

func runPlan(cmd *cobra.Command, args []string) error {
	names, err := gatherNames(args, planFlags.glob)
	if err != nil {
		return err
	}

	ts, err := planTimestampFunc()
	if err != nil {
		return err
	}

	items, err := retain.AgedItems(names, retain.TimestampFunc(ts), time.Now())
	if err != nil {
		return err
	}

	keep, discard, err := retain.Filter(items, planFlags.policy, planFlags.leeway)
	if err != nil {
		return err
	}

	if planFlags.remove {
		for _, item := range discard {
			if err := os.RemoveAll(item.Name); err != nil && !planFlags.noErrs {
				fmt.Fprintf(os.Stderr, "failed to remove %s: %v\n", item.Name, err)
			} else {
				slog.Debug("removed item", "name", item.Name)
			}
		}
		return nil
	}

	return printPlan(keep, discard)
}

// printPlan writes the selected partition in the requested format.
func printPlan(keep, discard []retain.Item) error {
	format := cli.OutputFormat(planFlags.format)
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return formatter.FormatTo(os.Stdout, struct {
			Keep    []string `json:"keep"`
			Discard []string `json:"discard"`
		}{itemNames(keep), itemNames(discard)})
	}

	selected := discard
	if planFlags.showKept {
		selected = keep
	}
	for _, item := range selected {
		fmt.Println(item.Name)
	}
	return nil
}

func itemNames(items []retain.Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// gatherNames collects item names from the arguments, reading extra names
// from stdin when a bare "-" is present and expanding wildcards when asked.
func gatherNames(args []string, glob bool) ([]string, error) {
	var names, paths []string

	for _, arg := range args {
		if arg == "-" {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				if line := scanner.Text(); line != "" {
					names = append(names, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read names from stdin: %w", err)
			}
			continue
		}
		paths = append(paths, arg)
	}

	expanded, err := purge.ExpandPaths(paths, glob)
	if err != nil {
		return nil, err
	}

	return append(names, expanded...), nil
}

// planTimestampFunc builds the timestamp strategy selected by the flags.
func planTimestampFunc() (timestamp.Func, error) {
	switch {
	case planFlags.timeLayout != "":
		return timestamp.Pattern(planFlags.timeLayout, planFlags.leafOnly), nil
	case planFlags.useMtime:
		return timestamp.Stat(timestamp.Modified)
	case planFlags.useAtime:
		return timestamp.Stat(timestamp.Accessed)
	default:
		return timestamp.Stat(timestamp.Changed)
	}
}
