// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep the
// crawl pipeline healthy when individual feeds, outlet sites, or LLM backends fail.
//
// The package supports:
//   - Circuit breakers for external calls (feeds, outlet search pages, Claude, OpenAI)
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig("wltx"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed()
//	})
//
//	retryConfig := retry.FeedFetchConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performFetch()
//	})
package resilience
