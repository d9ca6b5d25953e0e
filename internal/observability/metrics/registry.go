// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Crawl metrics track the aggregation pipeline
var (
	// FeedFetchDuration measures time to fetch one source
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// FeedFetchErrors counts absorbed fetch failures per source
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch errors",
		},
		[]string{"source", "error_type"},
	)

	// EntriesExtractedTotal counts feed entries extracted per source
	EntriesExtractedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entries_extracted_total",
			Help: "Total number of feed entries extracted",
		},
		[]string{"source"},
	)

	// ArticlesAcceptedTotal counts articles that survived classification and dedupe
	ArticlesAcceptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_accepted_total",
			Help: "Total number of articles accepted into the crawl result",
		},
		[]string{"source"},
	)

	// ArticlesRejectedTotal counts rejected candidates by reason
	ArticlesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_rejected_total",
			Help: "Total number of candidate articles rejected",
		},
		[]string{"reason"}, // reason: duplicate, excluded, location, topic, stale
	)

	// CrawlRunDuration measures full crawl run duration
	CrawlRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crawl_run_duration_seconds",
			Help:    "Time taken to complete a full crawl run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// BriefingsGeneratedTotal counts briefings by backend and status
	BriefingsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefings_generated_total",
			Help: "Total number of briefings generated",
		},
		[]string{"backend", "status"}, // backend: claude, openai, fallback
	)

	// BriefingDuration measures time to produce a briefing
	BriefingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefing_duration_seconds",
			Help:    "Time taken to generate a briefing",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// ContentFetchAttemptsTotal counts content enrichment attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ContentFetchDuration measures time to fetch article content
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordFeedFetch records one source fetch attempt.
func RecordFeedFetch(source string, duration time.Duration, err error) {
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		FeedFetchErrors.WithLabelValues(source, classifyFetchError(err)).Inc()
	}
}

// RecordRejection records one rejected candidate.
func RecordRejection(reason string) {
	ArticlesRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordBriefing records one briefing generation attempt.
func RecordBriefing(backend, status string, duration time.Duration) {
	BriefingsGeneratedTotal.WithLabelValues(backend, status).Inc()
	BriefingDuration.Observe(duration.Seconds())
}
