// Package metrics exposes Prometheus metrics for the chronoprune daemon:
// purge run counts and durations, and per-run item outcomes.
package metrics
