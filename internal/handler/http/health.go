// Package http provides HTTP handlers and middleware for the aggregation API.
// It includes the crawl and briefing endpoints, health check endpoints,
// metrics collection, and various middleware components.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// HealthHandler handles health check endpoint requests.
// The aggregator keeps no persistent store, so health is a function of
// configuration: a non-empty source registry and an identifiable briefing
// backend.
type HealthHandler struct {
	Version string

	// SourceCount is the number of configured news sources.
	SourceCount int

	// BriefingBackend names the active briefing backend ("claude", "openai",
	// or "fallback").
	BriefingBackend string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.SourceCount > 0 {
		checks["sources"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]interface{}{"count": h.SourceCount},
		}
	} else {
		checks["sources"] = CheckStatus{
			Status:  "unhealthy",
			Message: "no sources configured",
		}
		allHealthy = false
	}

	// A missing LLM key is not a failure: the deterministic fallback still
	// produces briefings.
	checks["briefing"] = CheckStatus{
		Status:  "healthy",
		Details: map[string]interface{}{"backend": h.BriefingBackend},
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
