// Package summary exposes the briefing generator over HTTP.
package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"stormfeed/internal/config"
	"stormfeed/internal/domain/entity"
	"stormfeed/internal/handler/http/requestid"
	"stormfeed/internal/handler/http/respond"
	"stormfeed/internal/observability/logging"
	"stormfeed/internal/usecase/briefing"
)

// PostHandler serves POST /api/summary: generate a briefing document from
// the submitted article set. The handler never fails over to a 5xx when the
// LLM backend is down; the briefing service substitutes the deterministic
// fallback in that case.
type PostHandler struct {
	Svc    *briefing.Service
	Logger *slog.Logger
}

func (h PostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	var req struct {
		Articles []entity.Article `json:"articles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid briefing request body",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles := req.Articles
	if len(articles) > config.MaxBriefingArticles {
		articles = articles[:config.MaxBriefingArticles]
	}

	report := h.Svc.Generate(ctx, articles)

	logger.Info("briefing response",
		"articles", len(articles),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, report)
}
