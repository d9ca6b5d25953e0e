// Package scraper extracts candidate entries from raw feed bodies and
// outlet search pages.
//
// Feed extraction is deliberately regex-driven rather than a structural XML
// parse: local station feeds routinely carry unclosed tags, mixed
// namespaces, and CDATA-wrapped links, and a strict parser would fail the
// whole feed over one bad entry. The regex sweep tolerates all of that and
// simply drops entries it cannot make sense of.
package scraper

import (
	"regexp"
	"strings"

	"stormfeed/internal/utils/text"
)

// Entry is one unprocessed candidate extracted from a feed or search page.
type Entry struct {
	// Title is the sanitized headline.
	Title string

	// Link is the article URL.
	Link string

	// Published is the raw publish-date string, format preserved.
	Published string

	// Summary is the sanitized, truncated description. May be empty.
	Summary string
}

var (
	itemPattern  = regexp.MustCompile(`(?s)<item(?:\s[^>]*)?>(.*?)</item>`)
	entryPattern = regexp.MustCompile(`(?s)<entry(?:\s[^>]*)?>(.*?)</entry>`)

	titlePattern    = regexp.MustCompile(`(?s)<title[^>]*>(.*?)</title>`)
	linkTextPattern = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	linkHrefPattern = regexp.MustCompile(`<link[^>]*href="([^"]+)"`)
	pubDatePattern  = regexp.MustCompile(`(?s)<pubDate>(.*?)</pubDate>`)
	publishedPattern = regexp.MustCompile(`(?s)<published>(.*?)</published>`)
	descPattern      = regexp.MustCompile(`(?s)<description>(.*?)</description>`)
)

// FeedParser extracts a bounded list of entries from raw feed text.
type FeedParser struct {
	maxEntries    int
	summaryBudget int
}

// NewFeedParser creates a parser that keeps at most maxEntries entries per
// feed and truncates summaries to summaryBudget characters.
func NewFeedParser(maxEntries, summaryBudget int) *FeedParser {
	return &FeedParser{
		maxEntries:    maxEntries,
		summaryBudget: summaryBudget,
	}
}

// Parse extracts candidate entries from a raw feed body. RSS <item> blocks
// are preferred; if the body has none, Atom <entry> blocks are used.
// Entries lacking a title or link after sanitization are dropped. An empty
// or unusable body yields an empty slice, never an error.
func (p *FeedParser) Parse(raw string) []Entry {
	if raw == "" {
		return nil
	}

	blocks := itemPattern.FindAllStringSubmatch(raw, -1)
	if len(blocks) == 0 {
		blocks = entryPattern.FindAllStringSubmatch(raw, -1)
	}

	if len(blocks) > p.maxEntries {
		blocks = blocks[:p.maxEntries]
	}

	entries := make([]Entry, 0, len(blocks))
	for _, block := range blocks {
		entry := p.parseBlock(block[1])
		if entry.Title == "" || entry.Link == "" {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// parseBlock extracts the first match of each field from one item/entry block.
func (p *FeedParser) parseBlock(block string) Entry {
	var entry Entry

	if m := titlePattern.FindStringSubmatch(block); m != nil {
		entry.Title = Sanitize(m[1])
	}

	// RSS carries the URL as the link tag body; Atom puts it in an href
	// attribute on a self-closing tag.
	if m := linkTextPattern.FindStringSubmatch(block); m != nil && strings.TrimSpace(m[1]) != "" {
		entry.Link = strings.TrimSpace(cdataPattern.ReplaceAllString(m[1], "$1"))
	} else if m := linkHrefPattern.FindStringSubmatch(block); m != nil {
		entry.Link = strings.TrimSpace(m[1])
	}

	if m := pubDatePattern.FindStringSubmatch(block); m != nil {
		entry.Published = strings.TrimSpace(m[1])
	} else if m := publishedPattern.FindStringSubmatch(block); m != nil {
		entry.Published = strings.TrimSpace(m[1])
	}

	if m := descPattern.FindStringSubmatch(block); m != nil {
		entry.Summary = text.TruncateRunes(Sanitize(m[1]), p.summaryBudget)
	}

	return entry
}
