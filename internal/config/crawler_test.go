package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCrawlerConfig() *CrawlerConfig {
	return &CrawlerConfig{
		GeneralWindow:     DefaultGeneralWindow,
		RedCrossWindow:    DefaultRedCrossWindow,
		MaxEntriesPerFeed: DefaultMaxEntriesPerFeed,
		SummaryBudget:     DefaultSummaryBudget,
		FetchTimeout:      DefaultFetchTimeout,
		Concurrency:       DefaultCrawlConcurrency,
		CrawlTimeout:      DefaultCrawlTimeout,
		UserAgent:         DefaultUserAgent,
	}
}

func TestLoadCrawlerConfig_Defaults(t *testing.T) {
	cfg, err := LoadCrawlerConfig()

	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.GeneralWindow)
	assert.Equal(t, 7*24*time.Hour, cfg.RedCrossWindow)
	assert.Equal(t, 15, cfg.MaxEntriesPerFeed)
	assert.Equal(t, 300, cfg.SummaryBudget)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadCrawlerConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRAWLER_GENERAL_WINDOW", "36h")
	t.Setenv("CRAWLER_MAX_ENTRIES_PER_FEED", "20")
	t.Setenv("CRAWLER_USER_AGENT", "stormfeed-test/1.0")

	cfg, err := LoadCrawlerConfig()

	require.NoError(t, err)
	assert.Equal(t, 36*time.Hour, cfg.GeneralWindow)
	assert.Equal(t, 20, cfg.MaxEntriesPerFeed)
	assert.Equal(t, "stormfeed-test/1.0", cfg.UserAgent)
}

func TestCrawlerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CrawlerConfig)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*CrawlerConfig) {},
		},
		{
			name:    "zero general window",
			mutate:  func(c *CrawlerConfig) { c.GeneralWindow = 0 },
			wantErr: "CRAWLER_GENERAL_WINDOW",
		},
		{
			name:    "red cross window shorter than general",
			mutate:  func(c *CrawlerConfig) { c.RedCrossWindow = 24 * time.Hour },
			wantErr: "CRAWLER_RED_CROSS_WINDOW",
		},
		{
			name:    "non-positive entry cap",
			mutate:  func(c *CrawlerConfig) { c.MaxEntriesPerFeed = 0 },
			wantErr: "CRAWLER_MAX_ENTRIES_PER_FEED",
		},
		{
			name:    "non-positive summary budget",
			mutate:  func(c *CrawlerConfig) { c.SummaryBudget = -1 },
			wantErr: "CRAWLER_SUMMARY_BUDGET",
		},
		{
			name:    "non-positive concurrency",
			mutate:  func(c *CrawlerConfig) { c.Concurrency = 0 },
			wantErr: "CRAWLER_CONCURRENCY",
		},
		{
			name:    "negative fetch timeout",
			mutate:  func(c *CrawlerConfig) { c.FetchTimeout = -time.Second },
			wantErr: "CRAWLER_FETCH_TIMEOUT",
		},
		{
			name:    "empty user agent",
			mutate:  func(c *CrawlerConfig) { c.UserAgent = "" },
			wantErr: "CRAWLER_USER_AGENT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCrawlerConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCrawlerConfig_InvalidEnv(t *testing.T) {
	t.Setenv("CRAWLER_CONCURRENCY", "-2")

	_, err := LoadCrawlerConfig()
	assert.Error(t, err)
}
