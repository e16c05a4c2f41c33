package purge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"halcyon-ops/chronoprune/pkg/config"
)

// Watcher watches target directories and triggers a purge when their
// contents change. It debounces bursts of events so a backup job writing
// many files causes a single run.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer
	paths    []string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// DefaultDebounceInterval is how long the watcher waits after the last
// filesystem event before triggering a purge.
const DefaultDebounceInterval = 2 * time.Second

// NewWatcher creates a watcher over the given directories.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsWatcher,
		logger:   slog.Default().With("component", "purge.watcher"),
		debounce: NewDebouncer(debounce),
		paths:    paths,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// WatchDirs derives the set of directories to watch from the configured
// targets: the parent directory of every path entry, with glob patterns
// trimmed back to their longest literal prefix.
func WatchDirs(cfg *config.Config) []string {
	seen := make(map[string]struct{})
	var dirs []string

	for _, target := range cfg.Targets {
		for _, path := range target.Paths {
			dir := filepath.Dir(path)
			if target.Glob {
				dir = literalPrefixDir(path)
			}
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// literalPrefixDir returns the deepest directory of a glob pattern that
// contains no wildcard characters.
func literalPrefixDir(pattern string) string {
	dir := pattern
	for strings.ContainsAny(dir, "*?[") {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
	if dir == pattern {
		// The pattern had no wildcards in its final element.
		dir = filepath.Dir(pattern)
	}
	return dir
}

// Watch starts watching and invokes onChange after each debounced burst of
// events. It blocks until the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	for _, path := range w.paths {
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			w.logger.Warn("not watching path", "path", path, "error", err)
			continue
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
	}

	w.logger.Info("file watcher started", "paths", len(w.paths))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only creations and removals change the retention
			// picture; chmod and in-place writes do not.
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("file event detected", "path", event.Name, "op", event.Op.String())

			w.debounce.Trigger(func() {
				w.logger.Info("triggering purge after filesystem change")
				onChange()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("file watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}
