package purge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs purges on a cron schedule.
type Scheduler struct {
	runner   *Runner
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler that triggers the runner on the given
// cron expression.
//
// Common cron expressions:
//   - "0 3 * * *"    - daily at 3 AM
//   - "0 */6 * * *"  - every 6 hours
//   - "0 0 * * 0"    - weekly on Sunday at midnight
func NewScheduler(runner *Runner, schedule string) *Scheduler {
	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "purge.scheduler"),
	}
}

// Start begins scheduled purging. The scheduler stops itself when the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runPurge(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule purging: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("purge scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runPurge executes one scheduled purge cycle.
func (s *Scheduler) runPurge(ctx context.Context) {
	s.logger.Info("starting scheduled purge")

	result := s.runner.Run(ctx)
	if result.Failed() {
		s.logger.Error("scheduled purge completed with failures")
		return
	}

	s.logger.Info("scheduled purge completed", "targets", len(result.Targets))
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("purge scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled purge time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
