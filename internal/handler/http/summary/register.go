package summary

import (
	"log/slog"
	"net/http"

	"stormfeed/internal/usecase/briefing"
)

// Register mounts the briefing endpoint on the mux.
func Register(mux *http.ServeMux, svc *briefing.Service, logger *slog.Logger) {
	mux.Handle("POST /api/summary", PostHandler{Svc: svc, Logger: logger})
}
