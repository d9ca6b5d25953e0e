package crawl

import (
	"log/slog"
	"net/http"
)

// Register mounts the crawl endpoint on the mux.
func Register(mux *http.ServeMux, svc Runner, logger *slog.Logger) {
	mux.Handle("GET /api/crawl", GetHandler{Svc: svc, Logger: logger})
}
