package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/resilience/circuitbreaker"
	"stormfeed/internal/resilience/retry"
	"stormfeed/internal/usecase/briefing"
	pkgconfig "stormfeed/pkg/config"
)

// ClaudeConfig holds configuration for the Claude briefing backend.
type ClaudeConfig struct {
	// Model is the Claude model identifier.
	Model string

	// MaxTokens bounds the API response.
	MaxTokens int

	// Timeout bounds one API call.
	Timeout time.Duration
}

// LoadClaudeConfig loads Claude backend configuration from environment
// variables with defaults.
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:     pkgconfig.GetEnvString("BRIEFING_CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		MaxTokens: pkgconfig.GetEnvInt("BRIEFING_MAX_TOKENS", 2000),
		Timeout:   pkgconfig.GetEnvDuration("BRIEFING_API_TIMEOUT", 30*time.Second),
	}
}

// Claude generates briefing reports through Anthropic's Messages API, with
// circuit breaker and retry protection.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         ClaudeConfig
	logger         *slog.Logger
}

// NewClaude creates a Claude briefing backend with the given API key.
func NewClaude(apiKey string, logger *slog.Logger) *Claude {
	config := LoadClaudeConfig()

	logger.Info("initialized claude briefing backend",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.BriefingAPIConfig(),
		config:         config,
		logger:         logger,
	}
}

// Name identifies the backend in logs and metrics.
func (c *Claude) Name() string { return "claude" }

// GenerateBriefing produces a briefing report for the article set. It uses
// circuit breaker and retry logic; the caller handles fallback on error.
func (c *Claude) GenerateBriefing(ctx context.Context, articles []entity.Article) (*briefing.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result *briefing.Report

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGenerate(ctx, articles)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				c.logger.Warn("claude api circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*briefing.Report)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("claude briefing failed after retries: %w", retryErr)
	}

	return result, nil
}

// doGenerate performs one API call without retry or circuit breaker.
func (c *Claude) doGenerate(ctx context.Context, articles []entity.Article) (*briefing.Report, error) {
	prompt := briefing.BuildPrompt(articles)
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorContext(ctx, "claude briefing call failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return nil, fmt.Errorf("claude api returned unexpected response type")
	}

	report, err := parseReport(textBlock.Text)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "claude briefing call completed",
		slog.Int("articles", len(articles)),
		slog.Duration("duration", duration))

	return report, nil
}
