// Package observability groups the logging, metrics, and tracing packages
// used across the API server and the snapshot worker.
//
// Subpackages:
//   - logging: structured slog loggers with request-ID propagation
//   - metrics: centralized Prometheus metrics and recording helpers
//   - tracing: OpenTelemetry tracer and HTTP span middleware
package observability
