package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Profiler rewrites raw prompts into sharper ones via a profiling completion
// round trip. Responses are cached with a TTL because the same raw prompt is
// produced repeatedly within a session (the question prompt only varies with
// job title and difficulty).
type Profiler struct {
	client   CompletionClient
	prompts  *PromptManager
	provider ModelProvider
	cache    *gocache.Cache
	logger   *slog.Logger
}

// NewProfiler creates a profiler whose optimized prompts are cached for ttl.
func NewProfiler(client CompletionClient, prompts *PromptManager, provider ModelProvider, ttl time.Duration, logger *slog.Logger) *Profiler {
	return &Profiler{
		client:   client,
		prompts:  prompts,
		provider: provider,
		cache:    gocache.New(ttl, 2*ttl),
		logger:   logger,
	}
}

// Optimize returns an optimized version of rawPrompt for the given role. The
// caller is expected to fall back to rawPrompt on error.
func (p *Profiler) Optimize(ctx context.Context, rawPrompt, jobTitle string) (string, error) {
	key := jobTitle + "\x00" + rawPrompt
	if cached, ok := p.cache.Get(key); ok {
		return cached.(string), nil
	}

	system, err := p.prompts.Render(ProfileSystemPrompt, p.provider, map[string]string{"JobTitle": jobTitle})
	if err != nil {
		return "", fmt.Errorf("failed to render profile prompt: %w", err)
	}

	raw, err := p.client.Complete(ctx, CompletionRequest{
		System:      system,
		User:        rawPrompt,
		MaxTokens:   300,
		Temperature: 0.2,
		JSONObject:  true,
	})
	if err != nil {
		return "", fmt.Errorf("profile completion failed: %w", err)
	}

	optimized, err := extractOptimizedPrompt(raw)
	if err != nil {
		return "", err
	}

	p.cache.SetDefault(key, optimized)
	return optimized, nil
}

// extractOptimizedPrompt digs the optimized prompt out of the profiler
// response. The payload has been observed in several shapes: the field at the
// top level, nested under "response" as an object, or nested under "response"
// as a JSON-encoded string.
func extractOptimizedPrompt(raw string) (string, error) {
	raw = stripMarkdownFence(raw)

	var envelope struct {
		OptimizedResponse string          `json:"optimized_response"`
		Response          json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return "", fmt.Errorf("profiler response is not valid JSON: %w", err)
	}

	if envelope.OptimizedResponse != "" {
		return envelope.OptimizedResponse, nil
	}

	if len(envelope.Response) == 0 {
		return "", fmt.Errorf("profiler response contains no optimized prompt")
	}

	inner := envelope.Response
	// Unwrap a JSON-encoded string payload before looking for the field.
	var asString string
	if err := json.Unmarshal(inner, &asString); err == nil {
		inner = json.RawMessage(asString)
	}

	var nested struct {
		OptimizedResponse string `json:"optimized_response"`
	}
	if err := json.Unmarshal(inner, &nested); err != nil {
		return "", fmt.Errorf("profiler response payload is malformed: %w", err)
	}
	if nested.OptimizedResponse == "" {
		return "", fmt.Errorf("profiler response contains no optimized prompt")
	}
	return nested.OptimizedResponse, nil
}
