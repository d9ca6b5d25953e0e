package metrics

import (
	"context"
	"errors"
	"net"
	"time"
)

// RecordEntriesExtracted records the number of entries pulled out of one
// source's raw feed body before classification.
func RecordEntriesExtracted(source string, count int) {
	EntriesExtractedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordArticleAccepted records one article surviving dedupe, classification,
// and recency filtering for a source.
func RecordArticleAccepted(source string) {
	ArticlesAcceptedTotal.WithLabelValues(source).Inc()
}

// RecordCrawlRun records the duration of a full aggregation run.
func RecordCrawlRun(duration time.Duration) {
	CrawlRunDuration.Observe(duration.Seconds())
}

// RecordContentFetchSuccess records a successful content fetch operation.
func RecordContentFetchSuccess(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a content fetch that was unnecessary
// because the feed summary was already long enough.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// classifyFetchError maps a fetch error to a low-cardinality label value.
func classifyFetchError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}

	return "other"
}
