package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// Source kinds supported by the crawl pipeline.
const (
	// SourceKindRSS is a direct RSS/Atom feed URL.
	SourceKindRSS = "rss"

	// SourceKindQuery is a Google-News-style search feed. FeedURL holds a
	// template with a {query} placeholder expanded per search term.
	SourceKindQuery = "query"

	// SourceKindSearch is an outlet search-results page scraped with CSS
	// selectors rather than parsed as a feed.
	SourceKindSearch = "search"
)

// SourceDescriptor is the static configuration for one news source.
// Descriptors are loaded once at process start and never mutated.
type SourceDescriptor struct {
	// Name is the human-readable publisher label attached to articles.
	Name string `yaml:"name" json:"name"`

	// Kind selects how the source is acquired: "rss", "query", or "search".
	// Empty is treated as "rss" for backward compatibility with older
	// registry files.
	Kind string `yaml:"kind" json:"kind"`

	// FeedURL is the feed URL (rss), the search feed template (query),
	// or the search page template (search). Templates contain a {query}
	// placeholder.
	FeedURL string `yaml:"feed_url" json:"feed_url"`

	// BaseURL resolves relative links found by the search scraper.
	// Only used for Kind "search".
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Query is the search term substituted into the template for query and
	// search sources.
	Query string `yaml:"query,omitempty" json:"query,omitempty"`
}

// ResolvedURL expands the {query} placeholder and returns the concrete URL
// to fetch for this source.
func (s *SourceDescriptor) ResolvedURL() string {
	if s.Query == "" {
		return s.FeedURL
	}
	return strings.ReplaceAll(s.FeedURL, "{query}", url.QueryEscape(s.Query))
}

// Validate checks that the descriptor is usable by the pipeline.
func (s *SourceDescriptor) Validate() error {
	if s.Kind == "" {
		s.Kind = SourceKindRSS
	}

	switch s.Kind {
	case SourceKindRSS, SourceKindQuery, SourceKindSearch:
	default:
		return fmt.Errorf("invalid source kind: %s (must be rss, query, or search)", s.Kind)
	}

	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "source name is required"}
	}
	if s.FeedURL == "" {
		return &ValidationError{Field: "feed_url", Message: "source feed_url is required"}
	}
	if (s.Kind == SourceKindQuery || s.Kind == SourceKindSearch) && s.Query == "" {
		return &ValidationError{Field: "query", Message: "query is required for query and search sources"}
	}
	if s.Kind == SourceKindSearch && s.BaseURL == "" {
		return &ValidationError{Field: "base_url", Message: "base_url is required for search sources"}
	}

	return nil
}
