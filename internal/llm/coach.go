package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
)

// Conversational boilerplate some models prepend despite being told not to.
var questionPrefixes = []string{
	"Okay, here's a question:",
	"Here's one:",
	"Here's a question:",
}

type coachService struct {
	cfg      config.AIConfig
	client   CompletionClient
	profiler *Profiler
	prompts  *PromptManager
	provider ModelProvider
	logger   *slog.Logger
}

// NewCoach builds the production core.Coach: prompt templates are rendered,
// run through the profiler, and sent to the completion client.
func NewCoach(cfg config.AIConfig, client CompletionClient, profiler *Profiler, prompts *PromptManager, logger *slog.Logger) core.Coach {
	return &coachService{
		cfg:      cfg,
		client:   client,
		profiler: profiler,
		prompts:  prompts,
		provider: ModelProvider(cfg.Provider),
		logger:   logger,
	}
}

func (c *coachService) GenerateQuestion(ctx context.Context, jobTitle string, level core.Difficulty) (string, error) {
	raw, err := c.prompts.Render(QuestionRawPrompt, c.provider, map[string]any{
		"JobTitle":   jobTitle,
		"Difficulty": level,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render question prompt: %w", err)
	}

	system, err := c.prompts.Render(QuestionSystemPrompt, c.provider, map[string]any{"JobTitle": jobTitle})
	if err != nil {
		return "", fmt.Errorf("failed to render question system prompt: %w", err)
	}

	question, err := c.client.Complete(ctx, CompletionRequest{
		System:      system,
		User:        c.optimize(ctx, raw, jobTitle),
		MaxTokens:   c.cfg.QuestionMaxTokens,
		Temperature: float32(c.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}

	question = stripQuestionPrefix(question)
	if question == "" {
		return "", fmt.Errorf("model returned an empty question")
	}
	return question, nil
}

func (c *coachService) EvaluateAnswer(ctx context.Context, jobTitle, question, answer string) (*core.Feedback, error) {
	raw, err := c.prompts.Render(FeedbackRawPrompt, c.provider, map[string]any{
		"Question": question,
		"Answer":   answer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render feedback prompt: %w", err)
	}

	system, err := c.prompts.Render(FeedbackSystemPrompt, c.provider, map[string]any{"JobTitle": jobTitle})
	if err != nil {
		return nil, fmt.Errorf("failed to render feedback system prompt: %w", err)
	}

	resp, err := c.client.Complete(ctx, CompletionRequest{
		System:      system,
		User:        c.optimize(ctx, raw, jobTitle),
		MaxTokens:   300,
		Temperature: float32(c.cfg.Temperature),
		JSONObject:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate feedback: %w", err)
	}

	feedback, err := parseFeedback(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	return feedback, nil
}

// optimize runs the raw prompt through the profiler, degrading to the raw
// prompt when the profiler is unavailable. A bad optimizer should never block
// an interview.
func (c *coachService) optimize(ctx context.Context, raw, jobTitle string) string {
	optimized, err := c.profiler.Optimize(ctx, raw, jobTitle)
	if err != nil {
		c.logger.Warn("prompt optimization failed, using raw prompt", "error", err)
		return raw
	}
	return optimized
}

func stripQuestionPrefix(question string) string {
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(question, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(question, prefix))
		}
	}
	return question
}
