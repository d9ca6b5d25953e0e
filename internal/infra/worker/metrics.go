package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot worker metrics, registered on the default registry alongside the
// pipeline metrics.
var (
	snapshotRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stormfeed_snapshot_runs_total",
		Help: "Snapshot runs by outcome",
	}, []string{"status"})

	snapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stormfeed_snapshot_duration_seconds",
		Help:    "Duration of snapshot runs",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	snapshotArticles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stormfeed_snapshot_articles",
		Help: "Article count in the most recent snapshot",
	})

	snapshotLastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stormfeed_snapshot_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful snapshot",
	})
)

// RecordRun records the outcome and duration of one snapshot run.
func RecordRun(status string, duration time.Duration) {
	snapshotRunsTotal.WithLabelValues(status).Inc()
	snapshotDuration.Observe(duration.Seconds())
}

// RecordSuccess records a successful snapshot's article count and timestamp.
func RecordSuccess(articles int) {
	snapshotArticles.Set(float64(articles))
	snapshotLastSuccess.SetToCurrentTime()
}
