package crawl

import (
	"stormfeed/internal/domain/entity"
)

// Deduplicator tracks the URLs and normalized titles accepted during one
// aggregation run. An entry is a duplicate if its URL has been recorded OR
// its normalized title has been recorded; either condition alone
// disqualifies it. Title matching catches re-publications of the same story
// under a different tracking URL, which URL-only dedup misses.
//
// Deduplicator is not safe for concurrent use on its own; the aggregator
// serializes access through its accumulator mutex.
type Deduplicator struct {
	seenURLs   map[string]struct{}
	seenTitles map[string]struct{}
}

// NewDeduplicator creates an empty run-scoped deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		seenURLs:   make(map[string]struct{}),
		seenTitles: make(map[string]struct{}),
	}
}

// Seen reports whether the URL or the normalized title has already been
// recorded, without recording anything.
func (d *Deduplicator) Seen(url, title string) bool {
	if _, ok := d.seenURLs[url]; ok {
		return true
	}
	_, ok := d.seenTitles[entity.NormalizeTitle(title)]
	return ok
}

// Record marks both the URL and the normalized title as seen. Both sets are
// updated together; an entry is never half-recorded.
func (d *Deduplicator) Record(url, title string) {
	d.seenURLs[url] = struct{}{}
	d.seenTitles[entity.NormalizeTitle(title)] = struct{}{}
}

// Admit records the entry and reports true if it was new, false if either
// identity component had been seen before.
func (d *Deduplicator) Admit(url, title string) bool {
	if d.Seen(url, title) {
		return false
	}
	d.Record(url, title)
	return true
}
