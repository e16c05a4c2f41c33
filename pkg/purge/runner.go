package purge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"halcyon-ops/chronoprune/pkg/config"
	"halcyon-ops/chronoprune/pkg/history"
	"halcyon-ops/chronoprune/pkg/policy"
	"halcyon-ops/chronoprune/pkg/retain"
	"halcyon-ops/chronoprune/pkg/telemetry/metrics"
	"halcyon-ops/chronoprune/pkg/timestamp"
)

// Runner executes purge runs over the configured targets.
type Runner struct {
	cfg     *config.Config
	store   *history.Store        // optional, may be nil
	metrics *metrics.PurgeMetrics // optional, may be nil
	logger  *slog.Logger
}

// NewRunner creates a runner. The history store and metrics may be nil, in
// which case run records and metrics are simply not produced.
func NewRunner(cfg *config.Config, store *history.Store, m *metrics.PurgeMetrics) *Runner {
	return &Runner{
		cfg:     cfg,
		store:   store,
		metrics: m,
		logger:  slog.Default().With("component", "purge.runner"),
	}
}

// TargetResult is the outcome of one purge run over a single target.
type TargetResult struct {
	RunID  string
	Target string

	Keep    []retain.Item
	Discard []retain.Item

	// Removed counts the discarded items actually deleted.
	Removed int

	// Err is set when the target could not be processed at all (bad
	// policy, unreadable paths). Per-item removal failures are logged
	// and counted, not fatal.
	Err error
}

// Result aggregates the outcomes of one run across all targets.
type Result struct {
	Targets []TargetResult
}

// Failed reports whether any target failed outright.
func (r *Result) Failed() bool {
	for i := range r.Targets {
		if r.Targets[i].Err != nil {
			return true
		}
	}
	return false
}

// Run executes one purge run over every configured target. A failing target
// does not stop the others; per-target errors are carried in the result.
func (r *Runner) Run(ctx context.Context) *Result {
	result := &Result{}

	for i := range r.cfg.Targets {
		select {
		case <-ctx.Done():
			return result
		default:
		}

		tr := r.runTarget(ctx, &r.cfg.Targets[i])
		result.Targets = append(result.Targets, tr)
	}

	return result
}

func (r *Runner) runTarget(ctx context.Context, t *config.TargetConfig) TargetResult {
	started := time.Now()
	tr := TargetResult{
		RunID:  uuid.NewString(),
		Target: t.Name,
	}
	logger := r.logger.With("target", t.Name, "run_id", tr.RunID)

	items, scanned, err := r.collectItems(t, started, logger)
	if err == nil {
		tr.Keep, tr.Discard, err = retain.Filter(items, t.Policy, t.Leeway)
	}
	if err != nil {
		tr.Err = err
		logger.Error("purge run failed", "error", err)
		r.report(ctx, t, &tr, started, scanned)
		return tr
	}

	for _, item := range tr.Keep {
		logger.Debug("keeping item", "name", item.Name, "age_days", item.Age/policy.Day)
	}

	if t.Remove {
		for _, item := range tr.Discard {
			if err := os.RemoveAll(item.Name); err != nil {
				logger.Warn("failed to remove item", "name", item.Name, "error", err)
				continue
			}
			logger.Debug("removed item", "name", item.Name, "age_days", item.Age/policy.Day)
			tr.Removed++
		}
	}

	logger.Info("purge run completed",
		"scanned", scanned,
		"kept", len(tr.Keep),
		"discarded", len(tr.Discard),
		"removed", tr.Removed,
		"duration", time.Since(started),
	)

	r.report(ctx, t, &tr, started, scanned)
	return tr
}

// collectItems expands the target's paths and resolves each item's age.
// Items whose timestamp cannot be resolved are skipped with a warning so one
// vanished file does not abort a scheduled run.
func (r *Runner) collectItems(t *config.TargetConfig, ref time.Time, logger *slog.Logger) ([]retain.Item, int, error) {
	names, err := ExpandPaths(t.Paths, t.Glob)
	if err != nil {
		return nil, 0, err
	}

	ts, err := timestampFor(t)
	if err != nil {
		return nil, 0, err
	}

	items := make([]retain.Item, 0, len(names))
	for _, name := range names {
		when, err := ts(name)
		if err != nil {
			logger.Warn("skipping item without timestamp", "name", name, "error", err)
			continue
		}
		age := ref.Sub(when).Seconds()
		if age <= 0 {
			continue
		}
		items = append(items, retain.Item{Age: age, Name: name})
	}

	return items, len(names), nil
}

// report records the run in history and metrics, when configured.
func (r *Runner) report(ctx context.Context, t *config.TargetConfig, tr *TargetResult, started time.Time, scanned int) {
	finished := time.Now()
	status := "ok"
	errMsg := ""
	if tr.Err != nil {
		status = "error"
		errMsg = tr.Err.Error()
	}

	if r.metrics != nil {
		r.metrics.RecordRun(t.Name, status, finished.Sub(started))
		r.metrics.RecordItems(t.Name, scanned, len(tr.Keep), len(tr.Discard), tr.Removed)
	}

	if r.store != nil {
		record := &history.RunRecord{
			ID:         tr.RunID,
			Target:     t.Name,
			StartedAt:  started,
			FinishedAt: finished,
			Policy:     t.Policy,
			Leeway:     t.Leeway,
			Scanned:    scanned,
			Kept:       len(tr.Keep),
			Discarded:  len(tr.Discard),
			Removed:    tr.Removed,
			Status:     status,
			Error:      errMsg,
		}
		if err := r.store.RecordRun(ctx, record); err != nil {
			r.logger.Warn("failed to record run history", "run_id", tr.RunID, "error", err)
		}
		if r.cfg.History.KeepRuns > 0 {
			if _, err := r.store.PruneRuns(ctx, r.cfg.History.KeepRuns); err != nil {
				r.logger.Warn("failed to prune run history", "error", err)
			}
		}
	}
}

// ExpandPaths resolves the configured path entries to concrete names,
// expanding shell wildcards when glob is set.
func ExpandPaths(paths []string, glob bool) ([]string, error) {
	if !glob {
		return paths, nil
	}

	var names []string
	for _, pattern := range paths {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		names = append(names, matches...)
	}
	return names, nil
}

// timestampFor builds the timestamp strategy for a target.
func timestampFor(t *config.TargetConfig) (timestamp.Func, error) {
	switch t.Timestamp {
	case "pattern":
		return timestamp.Pattern(t.TimeLayout, t.LeafOnly), nil
	case "mtime":
		return timestamp.Stat(timestamp.Modified)
	case "atime":
		return timestamp.Stat(timestamp.Accessed)
	case "ctime", "":
		return timestamp.Stat(timestamp.Changed)
	default:
		return nil, fmt.Errorf("unknown timestamp source %q", t.Timestamp)
	}
}
