// Package worker holds the supporting infrastructure for the scheduled
// snapshot worker: configuration, health endpoints, metrics, and the
// snapshot store.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	pkgconfig "stormfeed/pkg/config"
)

// Config holds the configuration for the snapshot worker.
type Config struct {
	// CronSchedule is the cron expression for snapshot runs.
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	Timezone string

	// CrawlTimeout bounds one aggregation run.
	CrawlTimeout time.Duration

	// HealthPort is the port for the worker's health and metrics server.
	HealthPort int

	// SnapshotDir is the directory snapshot files are written to.
	SnapshotDir string

	// SnapshotKeep is how many timestamped snapshots to retain.
	SnapshotKeep int
}

// DefaultConfig returns snapshot worker defaults: a run every 30 minutes in
// the storm area's timezone, which keeps the dashboard current during an
// active operation without hammering the outlets.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "*/30 * * * *",
		Timezone:     "America/New_York",
		CrawlTimeout: 5 * time.Minute,
		HealthPort:   9091,
		SnapshotDir:  "data/snapshots",
		SnapshotKeep: 48,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.CrawlTimeout); err != nil {
		return fmt.Errorf("crawl timeout: %w", err)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be between 1024 and 65535, got %d", c.HealthPort)
	}
	if c.SnapshotDir == "" {
		return fmt.Errorf("snapshot directory cannot be empty")
	}
	if c.SnapshotKeep < 1 {
		return fmt.Errorf("snapshot retention must be at least 1, got %d", c.SnapshotKeep)
	}
	return nil
}

// LoadConfig loads worker configuration from environment variables with
// defaults, and validates the result.
//
// Environment variables:
//   - WORKER_CRON_SCHEDULE
//   - WORKER_TIMEZONE
//   - WORKER_CRAWL_TIMEOUT
//   - WORKER_HEALTH_PORT
//   - WORKER_SNAPSHOT_DIR
//   - WORKER_SNAPSHOT_KEEP
func LoadConfig() (*Config, error) {
	defaults := DefaultConfig()

	cfg := &Config{
		CronSchedule: pkgconfig.GetEnvString("WORKER_CRON_SCHEDULE", defaults.CronSchedule),
		Timezone:     pkgconfig.GetEnvString("WORKER_TIMEZONE", defaults.Timezone),
		CrawlTimeout: pkgconfig.GetEnvDuration("WORKER_CRAWL_TIMEOUT", defaults.CrawlTimeout),
		HealthPort:   pkgconfig.GetEnvInt("WORKER_HEALTH_PORT", defaults.HealthPort),
		SnapshotDir:  pkgconfig.GetEnvString("WORKER_SNAPSHOT_DIR", defaults.SnapshotDir),
		SnapshotKeep: pkgconfig.GetEnvInt("WORKER_SNAPSHOT_KEEP", defaults.SnapshotKeep),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	return cfg, nil
}
