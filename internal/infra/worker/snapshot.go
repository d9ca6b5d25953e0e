package worker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"stormfeed/internal/usecase/crawl"
)

const (
	// snapshotPrefix names timestamped snapshot files.
	snapshotPrefix = "storm-news-"

	// latestName is the stable filename the dashboard reads.
	latestName = "latest.json"
)

// SnapshotStore persists aggregation results as JSON files. Each run writes
// a timestamped snapshot plus an atomically replaced latest.json, and old
// snapshots beyond the retention count are pruned.
type SnapshotStore struct {
	dir    string
	keep   int
	logger *slog.Logger
}

// NewSnapshotStore creates a store writing into dir, retaining keep
// timestamped snapshots.
func NewSnapshotStore(dir string, keep int, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{dir: dir, keep: keep, logger: logger}
}

// Write persists one aggregation result. latest.json is written through a
// temp file and rename so readers never observe a partial document.
func (s *SnapshotStore) Write(result *crawl.Result) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	stamped := filepath.Join(s.dir, fmt.Sprintf("%s%s.json", snapshotPrefix, time.Now().UTC().Format("20060102-150405")))
	if err := os.WriteFile(stamped, data, 0o640); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	tmp := filepath.Join(s.dir, latestName+".tmp")
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return fmt.Errorf("write latest snapshot: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, latestName)); err != nil {
		return fmt.Errorf("replace latest snapshot: %w", err)
	}

	s.prune()

	s.logger.Info("snapshot written",
		slog.String("path", stamped),
		slog.Int("articles", result.Metadata.TotalArticles))

	return nil
}

// prune removes timestamped snapshots beyond the retention count, oldest
// first. Prune failures are logged, not returned; a full disk surfaces on
// the next Write anyway.
func (s *SnapshotStore) prune() {
	matches, err := filepath.Glob(filepath.Join(s.dir, snapshotPrefix+"*.json"))
	if err != nil || len(matches) <= s.keep {
		return
	}

	// Timestamped names sort chronologically.
	sort.Strings(matches)

	for _, path := range matches[:len(matches)-s.keep] {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to prune snapshot",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}
}

// Latest reads the most recent snapshot, if one exists.
func (s *SnapshotStore) Latest() (*crawl.Result, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, latestName))
	if err != nil {
		return nil, fmt.Errorf("read latest snapshot: %w", err)
	}

	var result crawl.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode latest snapshot: %w", err)
	}

	return &result, nil
}
