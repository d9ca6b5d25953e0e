package crawl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"stormfeed/internal/domain/entity"
	crawlUC "stormfeed/internal/usecase/crawl"
)

type stubRunner struct {
	result *crawlUC.Result
	err    error
}

func (s *stubRunner) Run(context.Context) (*crawlUC.Result, error) {
	return s.result, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetHandler_Success(t *testing.T) {
	runner := &stubRunner{result: &crawlUC.Result{
		Metadata: crawlUC.Metadata{
			CrawledAt:     "2026-01-27T12:00:00Z",
			TotalArticles: 1,
			TotalCrawled:  2,
		},
		Articles: []entity.Article{
			{ID: "abc", Title: "Ice storm update", URL: "https://example.com/1", Source: "WIS News"},
		},
	}}

	h := GetHandler{Svc: runner, Logger: discardLogger()}

	req := httptest.NewRequest(http.MethodGet, "/api/crawl", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got crawlUC.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if got.Metadata.TotalArticles != 1 || got.Metadata.TotalCrawled != 2 {
		t.Errorf("metadata = %+v", got.Metadata)
	}
	if len(got.Articles) != 1 || got.Articles[0].Title != "Ice storm update" {
		t.Errorf("articles = %+v", got.Articles)
	}
}

func TestGetHandler_RunFailure(t *testing.T) {
	h := GetHandler{
		Svc:    &stubRunner{err: errors.New("context deadline exceeded")},
		Logger: discardLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/crawl", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, &stubRunner{result: &crawlUC.Result{Articles: []entity.Article{}}}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/crawl", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/crawl status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Method is part of the route pattern.
	req = httptest.NewRequest(http.MethodPost, "/api/crawl", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/crawl status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
