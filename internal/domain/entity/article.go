// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and SourceDescriptor, along
// with their identity rules and domain-specific errors.
package entity

import (
	"crypto/md5" // #nosec G501 -- identity fingerprint, not security
	"encoding/hex"
	"strings"
)

// fingerprintLen is the number of hex characters kept from the URL hash.
// 12 hex chars (48 bits) keeps collision probability negligible for the
// article volumes one aggregation run produces.
const fingerprintLen = 12

// Article represents a single aggregated news article.
// An Article is constructed once by the crawl pipeline and immutable afterwards;
// it lives only for the duration of one aggregation run.
type Article struct {
	// ID is a stable short fingerprint of the canonical URL.
	ID string `json:"id"`

	// Title is the sanitized, plain-text headline.
	Title string `json:"title"`

	// URL is the canonical source link.
	URL string `json:"url"`

	// Source is the human-readable publisher label, either one of the
	// configured source names or the aggregator label ("Google News").
	Source string `json:"source"`

	// Published is the raw publish-date string exactly as the feed carried it.
	// It may be empty or unparseable; recency filtering handles both.
	Published string `json:"published"`

	// Summary is the sanitized article description, truncated to the
	// configured character budget.
	Summary string `json:"summary"`
}

// Fingerprint derives the stable article ID from a URL.
// Identical URLs always yield identical IDs.
func Fingerprint(url string) string {
	sum := md5.Sum([]byte(url)) // #nosec G401 -- identity fingerprint, not security
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// NormalizeTitle lowercases a title and strips every character that is not
// an ASCII letter or digit. Two articles whose titles normalize to the same
// string are treated as re-publications of the same story.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
