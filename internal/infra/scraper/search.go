package scraper

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// searchSelectors are tried in order against an outlet search-results page.
// They are generic on purpose: the eight configured outlets run four
// different CMSes, and headline links land under one of these shapes on all
// of them.
var searchSelectors = []string{
	`article a[href*="/news/"]`,
	`article a[href*="/story/"]`,
	`.search-result a`,
	`.story-card a`,
	`h2 a`,
	`h3 a`,
	`.headline a`,
	`[class*="title"] a`,
	`[class*="headline"] a`,
}

// linksPerSelector caps how many links one selector may contribute.
const linksPerSelector = 10

// minTitleLength filters out navigation links ("More", "Weather") that the
// generic selectors inevitably pick up.
const minTitleLength = 10

// SearchScraper extracts article candidates from an outlet's search-results
// HTML. Candidates carry no publish date or summary; the outlets render
// those client-side.
type SearchScraper struct {
	logger *slog.Logger
}

// NewSearchScraper creates a new SearchScraper.
func NewSearchScraper(logger *slog.Logger) *SearchScraper {
	return &SearchScraper{logger: logger}
}

// Extract sweeps the selector list over the page and returns deduplicated
// candidate entries with absolute URLs. An unparseable page yields no
// candidates and no error.
func (s *SearchScraper) Extract(baseURL, page string) []Entry {
	if page == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		s.logger.Warn("search page not parseable",
			slog.String("base_url", baseURL),
			slog.String("error", err.Error()))
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		s.logger.Warn("invalid base URL for search source",
			slog.String("base_url", baseURL),
			slog.String("error", err.Error()))
		return nil
	}

	seen := make(map[string]struct{})
	var entries []Entry

	for _, selector := range searchSelectors {
		doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= linksPerSelector {
				return false
			}

			href, ok := sel.Attr("href")
			title := strings.TrimSpace(sel.Text())
			if !ok || href == "" || len(title) < minTitleLength {
				return true
			}

			absolute, err := resolveLink(base, href)
			if err != nil {
				return true
			}

			if _, dup := seen[absolute]; dup {
				return true
			}
			seen[absolute] = struct{}{}

			entries = append(entries, Entry{
				Title: Sanitize(title),
				Link:  absolute,
			})
			return true
		})
	}

	return entries
}

// resolveLink makes a scraped href absolute against the outlet base URL.
// Protocol-relative and already-absolute links pass through; anything that
// is not http(s) after resolution is rejected.
func resolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse href: %w", err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", resolved.Scheme)
	}

	return resolved.String(), nil
}
