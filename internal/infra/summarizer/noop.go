package summarizer

import (
	"context"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/usecase/briefing"
)

// NoOp is a briefing backend that always produces the deterministic
// fallback document without calling any API. Useful for local development
// and tests.
type NoOp struct{}

// NewNoOp creates a new NoOp backend.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Name identifies the backend in logs and metrics.
func (n *NoOp) Name() string { return "noop" }

// GenerateBriefing returns the deterministic fallback report.
func (n *NoOp) GenerateBriefing(_ context.Context, articles []entity.Article) (*briefing.Report, error) {
	return briefing.GenerateFallback(articles), nil
}
