package summarizer

import (
	"log/slog"
	"os"

	"stormfeed/internal/usecase/briefing"
)

// Backend selection values for the BRIEFING_BACKEND environment variable.
const (
	BackendClaude = "claude"
	BackendOpenAI = "openai"
	BackendNoop   = "noop"
	BackendNone   = "none"
)

// NewFromEnv selects and constructs a briefing backend.
//
// BRIEFING_BACKEND forces a specific backend. When unset, the backend is
// chosen by API key presence: ANTHROPIC_API_KEY wins over OPENAI_API_KEY.
// With no key configured the return is nil, which the briefing service
// treats as fallback-only operation.
func NewFromEnv(logger *slog.Logger) briefing.Summarizer {
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	switch os.Getenv("BRIEFING_BACKEND") {
	case BackendClaude:
		if anthropicKey == "" {
			logger.Warn("BRIEFING_BACKEND=claude but ANTHROPIC_API_KEY not set, briefings use fallback")
			return nil
		}
		return NewClaude(anthropicKey, logger)
	case BackendOpenAI:
		if openaiKey == "" {
			logger.Warn("BRIEFING_BACKEND=openai but OPENAI_API_KEY not set, briefings use fallback")
			return nil
		}
		return NewOpenAI(openaiKey, logger)
	case BackendNoop:
		return NewNoOp()
	case BackendNone:
		return nil
	}

	if anthropicKey != "" {
		return NewClaude(anthropicKey, logger)
	}
	if openaiKey != "" {
		return NewOpenAI(openaiKey, logger)
	}

	logger.Info("no briefing API key configured, briefings use fallback generator")
	return nil
}
