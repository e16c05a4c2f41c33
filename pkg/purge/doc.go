// Package purge orchestrates purge runs: it expands each configured
// target's paths, resolves item ages, applies the retention engine, and
// optionally deletes the discarded items. It also provides the cron
// scheduler and filesystem watcher used by daemon mode.
//
// The retention engine itself stays pure; all I/O lives here.
package purge
