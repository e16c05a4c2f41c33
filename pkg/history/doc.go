// Package history records purge runs in a local SQLite database so past
// runs can be audited: when a run happened, which target it covered, and
// how many items were kept, discarded and removed.
//
// Only run metadata is stored. Keep/discard decisions are recomputed from
// scratch on every run and never replayed from history.
package history
