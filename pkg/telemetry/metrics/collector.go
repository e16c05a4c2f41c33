package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PurgeMetrics tracks purge run activity.
//
// Metrics:
//   - <ns>_runs_total: purge runs by target and status
//   - <ns>_run_duration_seconds: purge run duration by target
//   - <ns>_items_scanned_total: items considered, by target
//   - <ns>_items_kept_total: items retained, by target
//   - <ns>_items_discarded_total: items selected for removal, by target
//   - <ns>_items_removed_total: items actually deleted, by target
type PurgeMetrics struct {
	registry *prometheus.Registry

	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec

	itemsScanned   *prometheus.CounterVec
	itemsKept      *prometheus.CounterVec
	itemsDiscarded *prometheus.CounterVec
	itemsRemoved   *prometheus.CounterVec
}

// NewPurgeMetrics creates and registers purge metrics. If registry is nil a
// fresh registry is created.
func NewPurgeMetrics(namespace string, registry *prometheus.Registry) *PurgeMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	pm := &PurgeMetrics{
		registry: registry,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of purge runs",
			},
			[]string{"target", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of purge runs in seconds",
				// Runs are filesystem-bound: milliseconds for a handful
				// of files up to minutes for large trees.
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"target"},
		),

		itemsScanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_scanned_total",
				Help:      "Total number of items considered for retention",
			},
			[]string{"target"},
		),

		itemsKept: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_kept_total",
				Help:      "Total number of items retained",
			},
			[]string{"target"},
		),

		itemsDiscarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_discarded_total",
				Help:      "Total number of items selected for removal",
			},
			[]string{"target"},
		),

		itemsRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_removed_total",
				Help:      "Total number of items actually deleted",
			},
			[]string{"target"},
		),
	}

	registry.MustRegister(
		pm.runsTotal,
		pm.runDuration,
		pm.itemsScanned,
		pm.itemsKept,
		pm.itemsDiscarded,
		pm.itemsRemoved,
	)

	return pm
}

// RecordRun records the outcome of one purge run over a target.
func (pm *PurgeMetrics) RecordRun(target, status string, duration time.Duration) {
	pm.runsTotal.WithLabelValues(target, status).Inc()
	pm.runDuration.WithLabelValues(target).Observe(duration.Seconds())
}

// RecordItems records per-item outcomes for one purge run.
func (pm *PurgeMetrics) RecordItems(target string, scanned, kept, discarded, removed int) {
	pm.itemsScanned.WithLabelValues(target).Add(float64(scanned))
	pm.itemsKept.WithLabelValues(target).Add(float64(kept))
	pm.itemsDiscarded.WithLabelValues(target).Add(float64(discarded))
	pm.itemsRemoved.WithLabelValues(target).Add(float64(removed))
}

// Handler returns an HTTP handler serving the metrics endpoint in the
// Prometheus exposition format.
func (pm *PurgeMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		pm.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}
