package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"halcyon-ops/chronoprune/pkg/cli"
	"halcyon-ops/chronoprune/pkg/config"
	"halcyon-ops/chronoprune/pkg/history"
	"halcyon-ops/chronoprune/pkg/purge"
	"halcyon-ops/chronoprune/pkg/telemetry/metrics"
)

var runFlags struct {
	once   bool
	dryRun bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run scheduled purges from a config file",
	Long: `Run chronoprune as a daemon, purging the configured targets on a cron
schedule. With watch enabled in the config, a purge is also triggered when a
target directory changes.

Examples:
  # Start the daemon
  chronoprune run --config /etc/chronoprune/config.yaml

  # Run every target once and exit
  chronoprune run --config config.yaml --once

  # Validate the config without purging anything
  chronoprune run --config config.yaml --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.once, "once", false, "run every target once and exit")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without purging")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if cfgFile == "" {
		return fmt.Errorf("run requires --config")
	}

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	configureDaemonLogging(cfg)

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()
	}

	var pm *metrics.PurgeMetrics
	if cfg.Metrics.Enabled {
		pm = metrics.NewPurgeMetrics(cfg.Metrics.Namespace, nil)
	}

	runner := purge.NewRunner(cfg, store, pm)
	ctx := cli.SetupSignalHandler()

	if runFlags.once {
		result := runner.Run(ctx)
		if result.Failed() {
			return fmt.Errorf("purge run completed with failures")
		}
		return nil
	}

	if pm != nil {
		startMetricsServer(ctx, cfg.Metrics.ListenAddress, pm)
	}

	scheduler := purge.NewScheduler(runner, cfg.Schedule)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	if next := scheduler.NextRun(); next != nil {
		slog.Info("daemon started", "next_run", next.Format(time.RFC3339))
	}

	if cfg.Watch {
		watcher, err := purge.NewWatcher(purge.WatchDirs(cfg), 0)
		if err != nil {
			return err
		}
		go func() {
			err := watcher.Watch(ctx, func() {
				runner.Run(ctx)
			})
			if err != nil {
				slog.Error("file watcher exited", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

// configureDaemonLogging replaces the flag-derived logger with one built
// from the config file.
func configureDaemonLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// startMetricsServer serves the Prometheus endpoint until the context ends.
func startMetricsServer(ctx context.Context, addr string, pm *metrics.PurgeMetrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", pm.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		slog.Info("metrics server listening", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
}
