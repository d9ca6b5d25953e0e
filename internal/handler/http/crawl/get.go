// Package crawl exposes the aggregation pipeline over HTTP.
package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"stormfeed/internal/handler/http/requestid"
	"stormfeed/internal/handler/http/respond"
	"stormfeed/internal/observability/logging"
	crawlUC "stormfeed/internal/usecase/crawl"
)

// Runner runs one aggregation and returns the result set.
type Runner interface {
	Run(ctx context.Context) (*crawlUC.Result, error)
}

// GetHandler serves GET /api/crawl: run the full aggregation and return the
// sorted article set with run metadata.
type GetHandler struct {
	Svc    Runner
	Logger *slog.Logger
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	logger.Info("aggregation requested",
		"request_id", reqID)

	result, err := h.Svc.Run(ctx)
	if err != nil {
		logger.Error("aggregation run failed",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("aggregation response",
		"articles", result.Metadata.TotalArticles,
		"crawled", result.Metadata.TotalCrawled,
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, result)
}
