// Package config holds application-level configuration for the crawl
// pipeline and the briefing generator. Values come from environment
// variables with validated defaults.
package config

import (
	"fmt"
	"time"

	pkgconfig "stormfeed/pkg/config"
)

// Pipeline defaults. The recency windows changed between earlier iterations
// of the system (36h general window at one point), so they stay named
// configuration rather than embedded literals.
const (
	// DefaultGeneralWindow is the recency window for ordinary articles.
	DefaultGeneralWindow = 48 * time.Hour

	// DefaultRedCrossWindow is the wider window for articles mentioning
	// "red cross", which stay operationally relevant longer.
	DefaultRedCrossWindow = 7 * 24 * time.Hour

	// DefaultMaxEntriesPerFeed caps the number of entries extracted from one
	// feed, bounding the cost of any single source.
	DefaultMaxEntriesPerFeed = 15

	// DefaultSummaryBudget is the maximum article summary length in characters.
	DefaultSummaryBudget = 300

	// DefaultFetchTimeout bounds a single feed fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultCrawlConcurrency bounds the per-source fan-out.
	DefaultCrawlConcurrency = 8

	// DefaultCrawlTimeout bounds a full aggregation run.
	DefaultCrawlTimeout = 60 * time.Second

	// DefaultUserAgent identifies outbound requests. Several outlets serve
	// bot user agents an empty page, so a browser string is used.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// MaxBriefingArticles caps the number of articles accepted by the
	// briefing endpoint.
	MaxBriefingArticles = 25
)

// CrawlerConfig holds the tunable parameters of the aggregation pipeline.
type CrawlerConfig struct {
	// GeneralWindow is the recency window for ordinary articles.
	GeneralWindow time.Duration

	// RedCrossWindow is the recency window for articles mentioning "red cross".
	RedCrossWindow time.Duration

	// MaxEntriesPerFeed caps entries extracted per source.
	MaxEntriesPerFeed int

	// SummaryBudget is the summary character cap.
	SummaryBudget int

	// FetchTimeout bounds one source fetch.
	FetchTimeout time.Duration

	// Concurrency bounds the parallel per-source fan-out.
	Concurrency int

	// CrawlTimeout bounds a full run.
	CrawlTimeout time.Duration

	// UserAgent is sent on every outbound request.
	UserAgent string

	// SourcesPath optionally points to a YAML source registry. Empty means
	// the compiled-in default registry.
	SourcesPath string
}

// LoadCrawlerConfig loads pipeline configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadCrawlerConfig() (*CrawlerConfig, error) {
	cfg := &CrawlerConfig{
		GeneralWindow:     pkgconfig.GetEnvDuration("CRAWLER_GENERAL_WINDOW", DefaultGeneralWindow),
		RedCrossWindow:    pkgconfig.GetEnvDuration("CRAWLER_RED_CROSS_WINDOW", DefaultRedCrossWindow),
		MaxEntriesPerFeed: pkgconfig.GetEnvInt("CRAWLER_MAX_ENTRIES_PER_FEED", DefaultMaxEntriesPerFeed),
		SummaryBudget:     pkgconfig.GetEnvInt("CRAWLER_SUMMARY_BUDGET", DefaultSummaryBudget),
		FetchTimeout:      pkgconfig.GetEnvDuration("CRAWLER_FETCH_TIMEOUT", DefaultFetchTimeout),
		Concurrency:       pkgconfig.GetEnvInt("CRAWLER_CONCURRENCY", DefaultCrawlConcurrency),
		CrawlTimeout:      pkgconfig.GetEnvDuration("CRAWLER_TIMEOUT", DefaultCrawlTimeout),
		UserAgent:         pkgconfig.GetEnvString("CRAWLER_USER_AGENT", DefaultUserAgent),
		SourcesPath:       pkgconfig.GetEnvString("CRAWLER_SOURCES_PATH", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crawler configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *CrawlerConfig) Validate() error {
	if err := pkgconfig.ValidatePositiveDuration(c.GeneralWindow); err != nil {
		return fmt.Errorf("CRAWLER_GENERAL_WINDOW: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RedCrossWindow); err != nil {
		return fmt.Errorf("CRAWLER_RED_CROSS_WINDOW: %w", err)
	}
	if c.RedCrossWindow < c.GeneralWindow {
		return fmt.Errorf("CRAWLER_RED_CROSS_WINDOW must be at least the general window")
	}
	if c.MaxEntriesPerFeed <= 0 {
		return fmt.Errorf("CRAWLER_MAX_ENTRIES_PER_FEED must be positive")
	}
	if c.SummaryBudget <= 0 {
		return fmt.Errorf("CRAWLER_SUMMARY_BUDGET must be positive")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("CRAWLER_FETCH_TIMEOUT: %w", err)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("CRAWLER_CONCURRENCY must be positive")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.CrawlTimeout); err != nil {
		return fmt.Errorf("CRAWLER_TIMEOUT: %w", err)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("CRAWLER_USER_AGENT cannot be empty")
	}
	return nil
}
