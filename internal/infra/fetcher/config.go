package fetcher

import (
	"fmt"
	"time"

	pkgconfig "stormfeed/pkg/config"
)

// ContentFetchConfig holds the configuration for full-article content
// fetching, used to enrich briefing input when feed summaries are thin.
type ContentFetchConfig struct {
	// Enabled controls whether content fetching is enabled.
	// When false, feed summaries are used directly.
	Enabled bool

	// Threshold is the minimum feed summary length (in characters) below
	// which the full article is fetched.
	Threshold int

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration

	// Parallelism is the maximum number of concurrent content fetches.
	Parallelism int

	// MaxBodySize is the maximum HTTP response body size in bytes.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated against the SSRF rules.
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private/loopback/link-local IPs.
	// Should always be true in production.
	DenyPrivateIPs bool
}

// DefaultContentFetchConfig returns production-ready defaults.
func DefaultContentFetchConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Threshold:      200,
		Timeout:        10 * time.Second,
		Parallelism:    5,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *ContentFetchConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}
	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}

// LoadContentFetchConfig loads configuration from environment variables,
// falling back to defaults, and validates the result.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED
//   - CONTENT_FETCH_THRESHOLD
//   - CONTENT_FETCH_TIMEOUT
//   - CONTENT_FETCH_PARALLELISM
//   - CONTENT_FETCH_MAX_BODY_SIZE
//   - CONTENT_FETCH_MAX_REDIRECTS
//   - CONTENT_FETCH_DENY_PRIVATE_IPS
func LoadContentFetchConfig() (ContentFetchConfig, error) {
	cfg := DefaultContentFetchConfig()

	cfg.Enabled = pkgconfig.GetEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)
	cfg.Threshold = pkgconfig.GetEnvInt("CONTENT_FETCH_THRESHOLD", cfg.Threshold)
	cfg.Timeout = pkgconfig.GetEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout)
	cfg.Parallelism = pkgconfig.GetEnvInt("CONTENT_FETCH_PARALLELISM", cfg.Parallelism)
	cfg.MaxBodySize = int64(pkgconfig.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = pkgconfig.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = pkgconfig.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
