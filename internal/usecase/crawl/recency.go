package crawl

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"stormfeed/internal/domain/entity"
)

// dateFormats cover the publish-date shapes the configured feeds actually
// emit: RFC-1123-style RSS dates, ISO 8601 with and without the T
// separator, and a bare day-month-year.
var dateFormats = []string{
	"Mon, 02 Jan 2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02 Jan 2006",
}

var (
	// tzAbbrevPattern strips a trailing timezone abbreviation (GMT, EST,
	// EDT, Z, ...). Offsets are dropped rather than applied; the recency
	// windows are measured in days and hours, so a few hours of skew never
	// changes the verdict.
	tzAbbrevPattern = regexp.MustCompile(`\s+(?:[A-Z]{1,5}|Z)$`)

	// tzOffsetPattern strips a trailing numeric offset like +0000 or -05:00.
	tzOffsetPattern = regexp.MustCompile(`\s*[+-]\d{2}:?\d{2}$`)
)

// monthNames for the unparseable-date fallback heuristic.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ParsePublished parses a raw feed publish date. Trailing timezone
// abbreviations and numeric offsets are stripped first, then each known
// format is tried in order. An unrecognized date returns the zero time and
// false.
func ParsePublished(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	s = tzOffsetPattern.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "Z")
	s = tzAbbrevPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// RecencyFilter keeps articles inside one of two sliding windows: a short
// general window, and a longer window for articles that mention the Red
// Cross. Shelter and relief coverage stays operationally relevant well
// after general storm coverage has gone stale.
type RecencyFilter struct {
	general  time.Duration
	redCross time.Duration
	now      func() time.Time
}

// NewRecencyFilter creates a filter with the given windows. The Red Cross
// window is expected to be at least as long as the general one.
func NewRecencyFilter(general, redCross time.Duration) *RecencyFilter {
	return &RecencyFilter{
		general:  general,
		redCross: redCross,
		now:      time.Now,
	}
}

// Keep reports whether the article falls inside its applicable window, and
// the parsed publish time (zero if unparseable).
//
// When the publish date cannot be parsed, the article is kept only if the
// raw date string mentions both the current year and the current month by
// name. That keeps fresh articles with exotic date formats while shedding
// the archive pages some outlet searches surface.
func (f *RecencyFilter) Keep(a entity.Article) (bool, time.Time) {
	now := f.now()

	window := f.general
	if mentionsRedCross(a) {
		window = f.redCross
	}

	parsed, ok := ParsePublished(a.Published)
	if !ok {
		return rawLooksCurrent(a.Published, now), time.Time{}
	}

	return now.Sub(parsed) <= window, parsed
}

func mentionsRedCross(a entity.Article) bool {
	text := strings.ToLower(a.Title + " " + a.Summary)
	return strings.Contains(text, "red cross")
}

func rawLooksCurrent(raw string, now time.Time) bool {
	if raw == "" {
		return false
	}
	lower := strings.ToLower(raw)
	if !strings.Contains(lower, now.Format("2006")) {
		return false
	}
	return strings.Contains(lower, monthNames[now.Month()-1])
}

// SortByRecency orders articles newest first. Articles without a parseable
// publish date sort after every dated article, in their existing relative
// order.
func SortByRecency(articles []entity.Article) {
	parsed := make(map[string]time.Time, len(articles))
	for _, a := range articles {
		if t, ok := ParsePublished(a.Published); ok {
			parsed[a.ID] = t
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		ti, iOK := parsed[articles[i].ID]
		tj, jOK := parsed[articles[j].ID]
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}
