package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stormfeed/internal/domain/entity"
)

// googleNewsTemplate is the Google News RSS search URL. The {query}
// placeholder is expanded per search term.
const googleNewsTemplate = "https://news.google.com/rss/search?q={query}&hl=en-US&gl=US&ceid=US:en"

// GoogleNewsLabel is the publisher label attached to articles found through
// Google News query feeds, regardless of the underlying outlet.
const GoogleNewsLabel = "Google News"

// registryFile is the on-disk shape of a YAML source registry.
type registryFile struct {
	Sources []entity.SourceDescriptor `yaml:"sources"`
}

// LoadSources returns the source registry. When path is empty the
// compiled-in default registry is returned; otherwise the YAML file at path
// is loaded and validated.
func LoadSources(path string) ([]entity.SourceDescriptor, error) {
	if path == "" {
		return DefaultSources(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read source registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse source registry: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("source registry %s contains no sources", path)
	}

	for i := range file.Sources {
		if err := file.Sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("source registry %s entry %d: %w", path, i, err)
		}
	}

	return file.Sources, nil
}

// DefaultSources returns the compiled-in registry: Google News query feeds
// for the storm search terms, direct feeds from local SC stations, and
// outlet search pages scraped for "ice storm".
func DefaultSources() []entity.SourceDescriptor {
	sources := []entity.SourceDescriptor{}

	searchTerms := []string{
		"South Carolina ice storm",
		"SC ice storm",
		"South Carolina winter storm",
		"SC power outage ice",
	}
	for _, term := range searchTerms {
		sources = append(sources, entity.SourceDescriptor{
			Name:    GoogleNewsLabel,
			Kind:    entity.SourceKindQuery,
			FeedURL: googleNewsTemplate,
			Query:   term,
		})
	}

	sources = append(sources,
		entity.SourceDescriptor{
			Name:    "WLTX Columbia",
			Kind:    entity.SourceKindRSS,
			FeedURL: "https://www.wltx.com/feeds/syndication/rss/news/local",
		},
		entity.SourceDescriptor{
			Name:    "WIS Columbia",
			Kind:    entity.SourceKindRSS,
			FeedURL: "https://www.wistv.com/arc/outboundfeeds/rss/category/news/?outputType=xml",
		},
		entity.SourceDescriptor{
			Name:    "WYFF Greenville",
			Kind:    entity.SourceKindRSS,
			FeedURL: "https://www.wyff4.com/topstories-rss",
		},
	)

	searchPages := []struct {
		name    string
		feedURL string
		baseURL string
	}{
		{"The State (Columbia)", "https://www.thestate.com/search/?q={query}", "https://www.thestate.com"},
		{"Post and Courier (Charleston)", "https://www.postandcourier.com/search/?q={query}", "https://www.postandcourier.com"},
		{"Greenville News", "https://www.greenvilleonline.com/search/?q={query}", "https://www.greenvilleonline.com"},
		{"WLTX (Columbia CBS)", "https://www.wltx.com/search?q={query}", "https://www.wltx.com"},
		{"WIS (Columbia NBC)", "https://www.wistv.com/search/?searchQuery={query}", "https://www.wistv.com"},
		{"WYFF (Greenville NBC)", "https://www.wyff4.com/search?q={query}", "https://www.wyff4.com"},
		{"WCSC (Charleston CBS)", "https://www.live5news.com/search/?searchQuery={query}", "https://www.live5news.com"},
		{"WMBF (Myrtle Beach)", "https://www.wmbfnews.com/search/?searchQuery={query}", "https://www.wmbfnews.com"},
	}
	for _, p := range searchPages {
		sources = append(sources, entity.SourceDescriptor{
			Name:    p.name,
			Kind:    entity.SourceKindSearch,
			FeedURL: p.feedURL,
			BaseURL: p.baseURL,
			Query:   "ice storm",
		})
	}

	return sources
}
