// Chronoprune selectively thins historic files and directories.
//
// Given a set of timestamped items (backup archives, log snapshots, dated
// directories) and a compact retention policy, it decides which items to
// keep and which to discard, keeping recent items densely and older items
// ever more sparsely.
//
// Usage:
//
//	# List what would be removed under the default "w,m,y" policy
//	chronoprune plan /backups/*.tar.gz --glob
//
//	# Actually remove them
//	chronoprune plan --rm --policy "4w:1w,oo:4w" /backups/*.tar.gz --glob
//
//	# Inspect the bands a policy resolves to
//	chronoprune terms --policy "d,2x" --count 10
//
//	# Run as a daemon with scheduled purges
//	chronoprune run --config /etc/chronoprune/config.yaml
//
//	# Query past runs
//	chronoprune history --db chronoprune-history.db
package main

func main() {
	Execute()
}
