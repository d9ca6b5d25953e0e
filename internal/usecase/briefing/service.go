package briefing

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/observability/metrics"
	"stormfeed/internal/utils/text"
)

// Summarizer generates a briefing report from an article set via an LLM
// backend. Name identifies the backend for logs and metrics.
type Summarizer interface {
	GenerateBriefing(ctx context.Context, articles []entity.Article) (*Report, error)
	Name() string
}

// ContentFetcher retrieves readable article body text for summary
// enrichment.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// fallbackBackend is the metrics label for the deterministic generator.
const fallbackBackend = "fallback"

// Service generates briefing reports. The LLM backend and the content
// fetcher are both optional; the service degrades to the deterministic
// fallback and unenriched summaries respectively.
type Service struct {
	summarizer Summarizer
	fetcher    ContentFetcher

	// enrichThreshold is the summary length below which the article body is
	// fetched to give the model more to work with.
	enrichThreshold int

	// summaryBudget caps enriched summaries, matching the crawl pipeline's
	// summary cap.
	summaryBudget int

	// parallelism bounds concurrent content fetches.
	parallelism int64

	logger *slog.Logger
}

// NewService wires a briefing service. summarizer and fetcher may be nil.
func NewService(summarizer Summarizer, fetcher ContentFetcher, enrichThreshold, summaryBudget, parallelism int, logger *slog.Logger) *Service {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &Service{
		summarizer:      summarizer,
		fetcher:         fetcher,
		enrichThreshold: enrichThreshold,
		summaryBudget:   summaryBudget,
		parallelism:     int64(parallelism),
		logger:          logger,
	}
}

// Generate produces a briefing for the article set. It never returns an
// error from a backend failure: when the LLM call fails or no backend is
// configured, the deterministic fallback report is returned instead, so the
// briefing endpoint stays available while the API is down.
func (s *Service) Generate(ctx context.Context, articles []entity.Article) *Report {
	start := time.Now()

	s.enrich(ctx, articles)

	report, backend := s.generate(ctx, articles)

	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report.ArticleCount = len(articles)

	elapsed := time.Since(start)
	metrics.RecordBriefing(backend, "success", elapsed)
	s.logger.Info("briefing generated",
		slog.String("backend", backend),
		slog.Int("articles", len(articles)),
		slog.Duration("elapsed", elapsed))

	return report
}

func (s *Service) generate(ctx context.Context, articles []entity.Article) (*Report, string) {
	if s.summarizer == nil {
		return GenerateFallback(articles), fallbackBackend
	}

	report, err := s.summarizer.GenerateBriefing(ctx, articles)
	if err != nil {
		metrics.RecordBriefing(s.summarizer.Name(), "error", 0)
		s.logger.Warn("briefing backend failed, using fallback",
			slog.String("backend", s.summarizer.Name()),
			slog.String("error", err.Error()))
		return GenerateFallback(articles), fallbackBackend
	}

	return report, s.summarizer.Name()
}

// enrich replaces thin summaries with fetched article body text, in place.
// Fetch failures leave the original summary untouched.
func (s *Service) enrich(ctx context.Context, articles []entity.Article) {
	if s.fetcher == nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(s.parallelism)

	for i := range articles {
		if text.CountRunes(articles[i].Summary) >= s.enrichThreshold {
			metrics.RecordContentFetchSkipped()
			continue
		}

		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		i := i
		g.Go(func() error {
			defer sem.Release(1)

			content, err := s.fetcher.FetchContent(gctx, articles[i].URL)
			if err != nil {
				s.logger.Debug("content enrichment failed",
					slog.String("url", articles[i].URL),
					slog.String("error", err.Error()))
				return nil
			}

			if text.CountRunes(content) > text.CountRunes(articles[i].Summary) {
				articles[i].Summary = text.TruncateRunes(content, s.summaryBudget)
			}
			return nil
		})
	}

	_ = g.Wait()
}
