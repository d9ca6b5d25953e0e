package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"stormfeed/internal/observability/metrics"
	"stormfeed/internal/resilience/circuitbreaker"
	"stormfeed/internal/resilience/retry"
)

// maxFeedBodySize caps the raw feed body. Feeds larger than this are cut off
// rather than rejected; the parser only looks at the leading entries anyway.
const maxFeedBodySize = 5 * 1024 * 1024

// FeedFetcher retrieves raw feed and search-page bodies over HTTP.
//
// The contract at its boundary is deliberately total: Fetch never returns an
// error. DNS failures, timeouts, TLS problems, and non-200 statuses all
// collapse to empty content with a structured warning, so one dead source
// can never fail an aggregation run. Retry, per-source circuit breaking, and
// per-host politeness limiting happen underneath that boundary.
//
// Thread safety: FeedFetcher is safe for concurrent use.
type FeedFetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger

	limiters sync.Map // host -> *rate.Limiter
	breakers sync.Map // source -> *circuitbreaker.CircuitBreaker
}

// NewFeedFetcher creates a fetcher with the given per-fetch timeout and
// User-Agent string.
func NewFeedFetcher(userAgent string, timeout time.Duration, logger *slog.Logger) *FeedFetcher {
	return &FeedFetcher{
		client: &http.Client{
			// The per-request context carries the real deadline; this is a
			// backstop for requests issued without one.
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch returns the raw body for one source URL, or empty content when the
// source is unavailable for any reason.
func (f *FeedFetcher) Fetch(ctx context.Context, source, urlStr string) string {
	start := time.Now()

	body, err := f.fetchWithResilience(ctx, source, urlStr)
	metrics.RecordFeedFetch(source, time.Since(start), err)

	if err != nil {
		f.logger.Warn("source unavailable, continuing without it",
			slog.String("source", source),
			slog.String("url", urlStr),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return ""
	}

	return body
}

// fetchWithResilience runs one fetch through retry and the source's circuit
// breaker.
func (f *FeedFetcher) fetchWithResilience(ctx context.Context, source, urlStr string) (string, error) {
	cb := f.breakerFor(source)

	var body string
	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
		result, err := cb.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		body = result.(string)
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

// doFetch performs a single GET with the configured timeout and size limit.
func (f *FeedFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	if err := validateURL(urlStr, true); err != nil {
		return "", err
	}

	if err := f.waitForHost(ctx, urlStr); err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.timeout)
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// waitForHost blocks on the host's politeness limiter. Multiple query feeds
// hit the same host (news.google.com) in one run; two requests per second
// per host keeps the crawler a good citizen.
func (f *FeedFetcher) waitForHost(ctx context.Context, urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	val, _ := f.limiters.LoadOrStore(u.Hostname(), rate.NewLimiter(rate.Every(500*time.Millisecond), 2))
	limiter := val.(*rate.Limiter)

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// breakerFor returns the circuit breaker for a source, creating it on first use.
func (f *FeedFetcher) breakerFor(source string) *circuitbreaker.CircuitBreaker {
	if val, ok := f.breakers.Load(source); ok {
		return val.(*circuitbreaker.CircuitBreaker)
	}
	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig(source))
	actual, _ := f.breakers.LoadOrStore(source, cb)
	return actual.(*circuitbreaker.CircuitBreaker)
}
