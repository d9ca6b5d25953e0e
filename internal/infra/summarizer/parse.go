// Package summarizer provides LLM-backed briefing generation. It includes
// adapters for the Anthropic and OpenAI APIs with circuit breaker and retry
// protection, plus backend selection from environment configuration.
package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"stormfeed/internal/usecase/briefing"
)

// extractJSON strips a Markdown code fence from model output. Models wrap
// JSON in ```json fences often enough that parsing the raw text directly
// fails on otherwise-valid responses.
func extractJSON(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		rest := content[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return rest[:end]
		}
		return rest
	}

	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return rest[:end]
		}
		return rest
	}

	return content
}

// parseReport decodes model output into a briefing report, tolerating a
// surrounding code fence.
func parseReport(content string) (*briefing.Report, error) {
	var report briefing.Report
	if err := json.Unmarshal([]byte(strings.TrimSpace(extractJSON(content))), &report); err != nil {
		return nil, fmt.Errorf("parse briefing response: %w", err)
	}
	return &report, nil
}
