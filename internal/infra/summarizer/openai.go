package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"stormfeed/internal/domain/entity"
	"stormfeed/internal/resilience/circuitbreaker"
	"stormfeed/internal/resilience/retry"
	"stormfeed/internal/usecase/briefing"
	pkgconfig "stormfeed/pkg/config"
)

// OpenAIConfig holds configuration for the OpenAI briefing backend.
type OpenAIConfig struct {
	// Model is the chat model identifier.
	Model string

	// Timeout bounds one API call.
	Timeout time.Duration
}

// LoadOpenAIConfig loads OpenAI backend configuration from environment
// variables with defaults.
func LoadOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:   pkgconfig.GetEnvString("BRIEFING_OPENAI_MODEL", openai.GPT4oMini),
		Timeout: pkgconfig.GetEnvDuration("BRIEFING_API_TIMEOUT", 30*time.Second),
	}
}

// OpenAI generates briefing reports through the OpenAI chat API, with
// circuit breaker and retry protection.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         OpenAIConfig
	logger         *slog.Logger
}

// NewOpenAI creates an OpenAI briefing backend with the given API key.
func NewOpenAI(apiKey string, logger *slog.Logger) *OpenAI {
	config := LoadOpenAIConfig()

	logger.Info("initialized openai briefing backend",
		slog.String("model", config.Model))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.BriefingAPIConfig(),
		config:         config,
		logger:         logger,
	}
}

// Name identifies the backend in logs and metrics.
func (o *OpenAI) Name() string { return "openai" }

// GenerateBriefing produces a briefing report for the article set. It uses
// circuit breaker and retry logic; the caller handles fallback on error.
func (o *OpenAI) GenerateBriefing(ctx context.Context, articles []entity.Article) (*briefing.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result *briefing.Report

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doGenerate(ctx, articles)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				o.logger.Warn("openai api circuit breaker open, request rejected",
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*briefing.Report)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("openai briefing failed after retries: %w", retryErr)
	}

	return result, nil
}

// doGenerate performs one API call without retry or circuit breaker.
func (o *OpenAI) doGenerate(ctx context.Context, articles []entity.Article) (*briefing.Report, error) {
	prompt := briefing.BuildPrompt(articles)
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)

	if err != nil {
		o.logger.ErrorContext(ctx, "openai briefing call failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned empty response")
	}

	report, err := parseReport(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	o.logger.InfoContext(ctx, "openai briefing call completed",
		slog.Int("articles", len(articles)),
		slog.Duration("duration", duration))

	return report, nil
}
