package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "*/30 * * * *", cfg.CronSchedule)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 5*time.Minute, cfg.CrawlTimeout)
	assert.Equal(t, 9091, cfg.HealthPort)
	assert.Equal(t, 48, cfg.SnapshotKeep)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WORKER_CRON_SCHEDULE", "0 * * * *")
	t.Setenv("WORKER_TIMEZONE", "UTC")
	t.Setenv("WORKER_SNAPSHOT_KEEP", "10")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "0 * * * *", cfg.CronSchedule)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 10, cfg.SnapshotKeep)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "bad cron expression",
			mutate:  func(c *Config) { c.CronSchedule = "every thirty minutes" },
			wantErr: "cron schedule",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Timezone = "America/Columbia_SC" },
			wantErr: "timezone",
		},
		{
			name:    "zero crawl timeout",
			mutate:  func(c *Config) { c.CrawlTimeout = 0 },
			wantErr: "crawl timeout",
		},
		{
			name:    "privileged health port",
			mutate:  func(c *Config) { c.HealthPort = 80 },
			wantErr: "health port",
		},
		{
			name:    "empty snapshot dir",
			mutate:  func(c *Config) { c.SnapshotDir = "" },
			wantErr: "snapshot directory",
		},
		{
			name:    "zero retention",
			mutate:  func(c *Config) { c.SnapshotKeep = 0 },
			wantErr: "retention",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

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
