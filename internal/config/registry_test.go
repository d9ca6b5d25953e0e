package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormfeed/internal/domain/entity"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()

	counts := map[string]int{}
	for _, s := range sources {
		counts[s.Kind]++

		require.NoError(t, s.Validate(), "default source %q must validate", s.Name)
		assert.NotEmpty(t, s.ResolvedURL(), "default source %q must resolve a URL", s.Name)
	}

	assert.Equal(t, 4, counts[entity.SourceKindQuery], "query feeds")
	assert.Equal(t, 3, counts[entity.SourceKindRSS], "direct feeds")
	assert.Equal(t, 8, counts[entity.SourceKindSearch], "outlet search pages")
}

func TestDefaultSources_QueryExpansion(t *testing.T) {
	sources := DefaultSources()

	url := sources[0].ResolvedURL()
	assert.Contains(t, url, "news.google.com/rss/search")
	assert.Contains(t, url, "South+Carolina+ice+storm")
	assert.NotContains(t, url, "{query}")
}

func TestLoadSources_EmptyPathUsesDefaults(t *testing.T) {
	sources, err := LoadSources("")

	require.NoError(t, err)
	assert.Len(t, sources, len(DefaultSources()))
}

func TestLoadSources_FromFile(t *testing.T) {
	registry := `sources:
  - name: Test Feed
    kind: rss
    feed_url: https://example.com/feed.xml
  - name: Test Search
    kind: search
    feed_url: https://example.com/search?q={query}
    base_url: https://example.com
    query: ice storm
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registry), 0o600))

	sources, err := LoadSources(path)

	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "Test Feed", sources[0].Name)
	assert.Equal(t, entity.SourceKindRSS, sources[0].Kind)
	assert.Equal(t, "https://example.com/search?q=ice+storm", sources[1].ResolvedURL())
}

func TestLoadSources_MissingFile(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSources_InvalidEntry(t *testing.T) {
	// The search source is missing base_url.
	registry := `sources:
  - name: Broken Search
    kind: search
    feed_url: https://example.com/search?q={query}
    query: ice storm
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registry), 0o600))

	_, err := LoadSources(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestLoadSources_EmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o600))

	_, err := LoadSources(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources")
}

func TestLoadSources_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: [unclosed"), 0o600))

	_, err := LoadSources(path)
	assert.Error(t, err)
}
