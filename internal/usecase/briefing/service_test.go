package briefing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"stormfeed/internal/domain/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSummarizer struct {
	report *Report
	err    error
	calls  int
}

func (s *stubSummarizer) GenerateBriefing(_ context.Context, _ []entity.Article) (*Report, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubSummarizer) Name() string { return "stub" }

type stubContentFetcher struct {
	content map[string]string
	err     error
	calls   []string
}

func (f *stubContentFetcher) FetchContent(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.content[url], nil
}

func TestService_Generate_NoBackendUsesFallback(t *testing.T) {
	svc := NewService(nil, nil, 100, 100, 2, discardLogger())

	articles := []entity.Article{
		{Title: "Dominion Energy outage update", Source: "WIS News"},
	}
	report := svc.Generate(context.Background(), articles)

	if report.ArticleCount != 1 {
		t.Errorf("ArticleCount = %d, want 1", report.ArticleCount)
	}
	if !strings.Contains(report.ExecutiveSummary, "winter ice storm") {
		t.Errorf("fallback summary missing: %q", report.ExecutiveSummary)
	}
	if _, err := time.Parse(time.RFC3339, report.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt %q is not RFC 3339: %v", report.GeneratedAt, err)
	}
}

func TestService_Generate_BackendReportUsed(t *testing.T) {
	backend := &stubSummarizer{report: &Report{ExecutiveSummary: "model-written summary"}}
	svc := NewService(backend, nil, 100, 100, 2, discardLogger())

	report := svc.Generate(context.Background(), []entity.Article{{Title: "T"}})

	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
	if report.ExecutiveSummary != "model-written summary" {
		t.Errorf("ExecutiveSummary = %q, want the backend report", report.ExecutiveSummary)
	}
	if report.ArticleCount != 1 || report.GeneratedAt == "" {
		t.Errorf("service did not stamp the backend report: %+v", report)
	}
}

func TestService_Generate_BackendFailureFallsBack(t *testing.T) {
	backend := &stubSummarizer{err: errors.New("api unavailable")}
	svc := NewService(backend, nil, 100, 100, 2, discardLogger())

	report := svc.Generate(context.Background(), []entity.Article{{Title: "T", Source: "S"}})

	if !strings.Contains(report.ExecutiveSummary, "winter ice storm") {
		t.Errorf("expected fallback report, got %q", report.ExecutiveSummary)
	}
	if report.ArticleCount != 1 {
		t.Errorf("ArticleCount = %d, want 1", report.ArticleCount)
	}
}

func TestService_Enrich_ReplacesThinSummaries(t *testing.T) {
	fetcher := &stubContentFetcher{content: map[string]string{
		"https://example.com/a": "A much longer readable article body fetched from the outlet page.",
	}}
	svc := NewService(nil, fetcher, 50, 100, 2, discardLogger())

	articles := []entity.Article{
		{Title: "T", URL: "https://example.com/a", Summary: "Short."},
	}
	svc.Generate(context.Background(), articles)

	if articles[0].Summary != "A much longer readable article body fetched from the outlet page." {
		t.Errorf("Summary = %q, want the fetched content", articles[0].Summary)
	}
}

func TestService_Enrich_SkipsLongSummaries(t *testing.T) {
	fetcher := &stubContentFetcher{}
	svc := NewService(nil, fetcher, 10, 100, 2, discardLogger())

	articles := []entity.Article{
		{Title: "T", URL: "https://example.com/a", Summary: "This summary is already long enough."},
	}
	svc.Generate(context.Background(), articles)

	if len(fetcher.calls) != 0 {
		t.Errorf("fetcher called for %v, want no calls", fetcher.calls)
	}
}

func TestService_Enrich_FetchFailureKeepsOriginal(t *testing.T) {
	fetcher := &stubContentFetcher{err: errors.New("timeout")}
	svc := NewService(nil, fetcher, 50, 100, 2, discardLogger())

	articles := []entity.Article{
		{Title: "T", URL: "https://example.com/a", Summary: "Short."},
	}
	svc.Generate(context.Background(), articles)

	if articles[0].Summary != "Short." {
		t.Errorf("Summary = %q, want the original left untouched", articles[0].Summary)
	}
}

func TestService_Enrich_ShorterContentIgnored(t *testing.T) {
	fetcher := &stubContentFetcher{content: map[string]string{
		"https://example.com/a": "Tiny",
	}}
	svc := NewService(nil, fetcher, 50, 100, 2, discardLogger())

	articles := []entity.Article{
		{Title: "T", URL: "https://example.com/a", Summary: "Short but longer than tiny."},
	}
	svc.Generate(context.Background(), articles)

	if articles[0].Summary != "Short but longer than tiny." {
		t.Errorf("Summary = %q, fetched content should not shrink a summary", articles[0].Summary)
	}
}

func TestService_Enrich_TruncatesToBudget(t *testing.T) {
	fetcher := &stubContentFetcher{content: map[string]string{
		"https://example.com/a": strings.Repeat("body ", 100),
	}}
	svc := NewService(nil, fetcher, 50, 80, 2, discardLogger())

	articles := []entity.Article{
		{Title: "T", URL: "https://example.com/a", Summary: "Short."},
	}
	svc.Generate(context.Background(), articles)

	if got := len([]rune(articles[0].Summary)); got > 80 {
		t.Errorf("enriched summary is %d runes, want <= 80", got)
	}
}
