// Package llm implements the interview coach on top of a hosted,
// OpenAI-compatible completion API.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/metrics"
)

// CompletionRequest describes a single chat completion round trip.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
	JSONObject  bool
}

// CompletionClient abstracts the completion API so the coach and its tests
// don't depend on a live endpoint.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type openAIClient struct {
	client  *openai.Client
	model   string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCompletionClient creates a client for the configured provider. Any
// provider that speaks the OpenAI chat completion protocol works; only the
// base URL differs.
func NewCompletionClient(cfg config.AIConfig, logger *slog.Logger, m *metrics.Metrics) (CompletionClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: 2 * time.Minute}

	logger.Info("completion client initialized", "provider", cfg.Provider, "model", cfg.Model)

	return &openAIClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		logger:  logger,
		metrics: m,
	}, nil
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	completionReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		N:           1,
	}
	if req.JSONObject {
		completionReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.metrics.IncrementAPICalls()

	resp, err := c.client.CreateChatCompletion(ctx, completionReq)
	if err != nil {
		c.metrics.IncrementAPIFailures()
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.metrics.IncrementAPIFailures()
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
