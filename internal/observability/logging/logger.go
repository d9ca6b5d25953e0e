// Package logging builds the application's slog loggers. Both binaries log
// JSON to stdout; the level comes from LOG_LEVEL.
package logging

import (
	"context"
	"log/slog"
	"os"

	"stormfeed/internal/handler/http/requestid"
)

// NewLogger returns a JSON logger at the level named by LOG_LEVEL (debug,
// info, warn, error; default info). Source locations are attached at warn
// and above, where someone will actually be chasing the line.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID returns logger annotated with the request ID carried in ctx,
// or logger unchanged when there is none.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
