// Package crawl implements the aggregation pipeline: fan out over the
// configured sources, extract candidate entries, deduplicate, classify for
// relevance, filter for recency, and return a sorted result set.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/infra/scraper"
	"stormfeed/internal/observability/metrics"
	"stormfeed/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Fetcher retrieves the raw body for one source URL. Implementations absorb
// all failures and return an empty string; a single bad source never fails
// the run.
type Fetcher interface {
	Fetch(ctx context.Context, source, url string) string
}

// FeedExtractor pulls candidate entries out of a raw feed body.
type FeedExtractor interface {
	Parse(raw string) []Entry
}

// SearchExtractor pulls candidate entries out of an outlet search page.
type SearchExtractor interface {
	Extract(baseURL, page string) []Entry
}

// Entry is re-exported so the package's interfaces read naturally; the
// scraper package owns the definition.
type Entry = scraper.Entry

// Metadata describes one aggregation run.
type Metadata struct {
	// CrawledAt is the run completion time in RFC 3339 UTC.
	CrawledAt string `json:"crawled_at"`

	// TotalArticles counts articles in the final result set.
	TotalArticles int `json:"total_articles"`

	// TotalCrawled counts articles accepted by classification before
	// recency filtering removed the stale ones.
	TotalCrawled int `json:"total_crawled"`
}

// Result is the output of one aggregation run.
type Result struct {
	Metadata Metadata         `json:"metadata"`
	Articles []entity.Article `json:"articles"`
}

// Aggregator runs the full pipeline over a fixed source registry.
type Aggregator struct {
	sources     []entity.SourceDescriptor
	fetcher     Fetcher
	feeds       FeedExtractor
	search      SearchExtractor
	classifier  *Classifier
	recency     *RecencyFilter
	concurrency int64
	logger      *slog.Logger
}

// NewAggregator wires the pipeline stages together.
func NewAggregator(
	sources []entity.SourceDescriptor,
	fetcher Fetcher,
	feeds FeedExtractor,
	search SearchExtractor,
	classifier *Classifier,
	recency *RecencyFilter,
	concurrency int,
	logger *slog.Logger,
) *Aggregator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Aggregator{
		sources:     sources,
		fetcher:     fetcher,
		feeds:       feeds,
		search:      search,
		classifier:  classifier,
		recency:     recency,
		concurrency: int64(concurrency),
		logger:      logger,
	}
}

// sourceBatch is the extraction output of one source, applied to the shared
// accumulator in one critical section.
type sourceBatch struct {
	source  entity.SourceDescriptor
	entries []Entry
}

// Run executes one aggregation. Sources are fetched and extracted in
// parallel under the concurrency bound; candidate entries are then admitted
// through dedupe and classification under a single accumulator lock, so the
// seen-URL and seen-title sets always advance together. Run never returns
// an error from a source failure; failed sources contribute nothing.
func (a *Aggregator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "crawl.run",
		trace.WithAttributes(attribute.Int("sources", len(a.sources))))
	defer span.End()

	batches := make([]sourceBatch, len(a.sources))

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(a.concurrency)

	for i, src := range a.sources {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		i, src := i, src
		g.Go(func() error {
			defer sem.Release(1)
			batches[i] = sourceBatch{
				source:  src,
				entries: a.collect(gctx, src),
			}
			return nil
		})
	}

	// Worker funcs never return errors; Wait only surfaces context
	// cancellation, which still yields whatever was collected.
	_ = g.Wait()

	articles, totalCrawled := a.assemble(batches)
	SortByRecency(articles)

	elapsed := time.Since(start)
	metrics.RecordCrawlRun(elapsed)
	span.SetAttributes(
		attribute.Int("articles", len(articles)),
		attribute.Int("crawled", totalCrawled),
	)

	a.logger.Info("aggregation run complete",
		slog.Int("sources", len(a.sources)),
		slog.Int("crawled", totalCrawled),
		slog.Int("articles", len(articles)),
		slog.Duration("elapsed", elapsed))

	return &Result{
		Metadata: Metadata{
			CrawledAt:     time.Now().UTC().Format(time.RFC3339),
			TotalArticles: len(articles),
			TotalCrawled:  totalCrawled,
		},
		Articles: articles,
	}, nil
}

// collect fetches and extracts one source. All failures degrade to an empty
// entry list.
func (a *Aggregator) collect(ctx context.Context, src entity.SourceDescriptor) []Entry {
	body := a.fetcher.Fetch(ctx, src.Name, src.ResolvedURL())
	if body == "" {
		return nil
	}

	var entries []Entry
	switch src.Kind {
	case entity.SourceKindSearch:
		entries = a.search.Extract(src.BaseURL, body)
	default:
		entries = a.feeds.Parse(body)
	}

	metrics.RecordEntriesExtracted(src.Name, len(entries))
	a.logger.Debug("source extracted",
		slog.String("source", src.Name),
		slog.String("kind", src.Kind),
		slog.Int("entries", len(entries)))

	return entries
}

// assemble runs dedupe, classification, and recency over the collected
// batches in source order, keeping runs deterministic for a given set of
// fetched bodies.
func (a *Aggregator) assemble(batches []sourceBatch) ([]entity.Article, int) {
	dedupe := NewDeduplicator()
	var kept []entity.Article
	totalCrawled := 0

	for _, batch := range batches {
		for _, e := range batch.entries {
			if dedupe.Seen(e.Link, e.Title) {
				metrics.RecordRejection("duplicate")
				continue
			}

			accepted, reason := a.classifier.Classify(e.Title, e.Summary)
			if !accepted {
				metrics.RecordRejection(reason)
				continue
			}

			// Both identity sets advance only on acceptance, so a rejected
			// candidate never blocks a relevant duplicate from another source.
			dedupe.Record(e.Link, e.Title)
			totalCrawled++

			article := entity.Article{
				ID:        entity.Fingerprint(e.Link),
				Title:     e.Title,
				URL:       e.Link,
				Source:    batch.source.Name,
				Published: e.Published,
				Summary:   e.Summary,
			}

			keep, _ := a.recency.Keep(article)
			if !keep {
				metrics.RecordRejection("stale")
				continue
			}

			metrics.RecordArticleAccepted(batch.source.Name)
			kept = append(kept, article)
		}
	}

	if kept == nil {
		kept = []entity.Article{}
	}

	return kept, totalCrawled
}
