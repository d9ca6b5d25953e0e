package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stormfeed/internal/config"
	"stormfeed/internal/domain/entity"
	"stormfeed/internal/usecase/briefing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fallbackService has no LLM backend and no content fetcher, so responses are
// deterministic.
func fallbackService() *briefing.Service {
	return briefing.NewService(nil, nil, 100, 300, 2, discardLogger())
}

func postSummary(t *testing.T, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	h := PostHandler{Svc: fallbackService(), Logger: discardLogger()}
	req := httptest.NewRequest(http.MethodPost, "/api/summary", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostHandler_Success(t *testing.T) {
	body, _ := json.Marshal(map[string]any{
		"articles": []entity.Article{
			{Title: "Dominion Energy outage update", Source: "WIS News"},
			{Title: "Warming shelter opens in Sumter", Source: "Live 5"},
		},
	})

	rec := postSummary(t, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var report briefing.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if report.ArticleCount != 2 {
		t.Errorf("article_count = %d, want 2", report.ArticleCount)
	}
	if !strings.Contains(report.ExecutiveSummary, "South Carolina") {
		t.Errorf("executive_summary = %q", report.ExecutiveSummary)
	}
	if report.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
}

func TestPostHandler_InvalidBody(t *testing.T) {
	rec := postSummary(t, []byte("{not json"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPostHandler_EmptyArticleSet(t *testing.T) {
	rec := postSummary(t, []byte(`{"articles": []}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var report briefing.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if report.ArticleCount != 0 {
		t.Errorf("article_count = %d, want 0", report.ArticleCount)
	}
}

func TestPostHandler_ArticleCap(t *testing.T) {
	var articles []entity.Article
	for i := 0; i < config.MaxBriefingArticles+10; i++ {
		articles = append(articles, entity.Article{
			Title:  fmt.Sprintf("Ice storm update %d", i),
			Source: "WIS News",
		})
	}
	body, _ := json.Marshal(map[string]any{"articles": articles})

	rec := postSummary(t, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var report briefing.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if report.ArticleCount != config.MaxBriefingArticles {
		t.Errorf("article_count = %d, want the cap %d", report.ArticleCount, config.MaxBriefingArticles)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, fallbackService(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(`{"articles": []}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("POST /api/summary status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/summary status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
