// Package cli provides small helpers shared by the chronoprune commands:
// signal-aware contexts and output formatting.
package cli
