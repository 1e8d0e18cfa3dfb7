package llm

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
)

func newTestCoach(t *testing.T, client CompletionClient) core.Coach {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)

	cfg := config.AIConfig{
		Provider:          "openai",
		Model:             "gpt-4o-mini",
		QuestionMaxTokens: 70,
		Temperature:       0.7,
	}
	profiler := NewProfiler(client, pm, DefaultProvider, time.Hour, slog.Default())
	return NewCoach(cfg, client, profiler, pm, slog.Default())
}

func TestCoachGenerateQuestion(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"optimized_response": "ask about goroutine leaks"}`,
		"How would you detect a goroutine leak in production?",
	}}
	coach := newTestCoach(t, client)

	q, err := coach.GenerateQuestion(context.Background(), "Software Engineer", core.DifficultyMedium)
	require.NoError(t, err)
	assert.Equal(t, "How would you detect a goroutine leak in production?", q)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, 70, client.lastReq.MaxTokens)
	assert.Equal(t, "ask about goroutine leaks", client.lastReq.User)
}

func TestCoachGenerateQuestion_StripsPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Okay, here's a question: What is a mutex?", "What is a mutex?"},
		{"Here's one: What is a mutex?", "What is a mutex?"},
		{"Here's a question: What is a mutex?", "What is a mutex?"},
		{"What is a mutex?", "What is a mutex?"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			client := &fakeClient{responses: []string{
				`{"optimized_response": "p"}`,
				tt.input,
			}}
			coach := newTestCoach(t, client)

			q, err := coach.GenerateQuestion(context.Background(), "Software Engineer", core.DifficultyEasy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestCoachGenerateQuestion_ProfilerFailureDegrades(t *testing.T) {
	// First call (profiler) returns garbage; the coach must fall back to the
	// raw rendered prompt and still produce a question.
	client := &fakeClient{responses: []string{
		"not json at all",
		"What does CAP stand for?",
	}}
	coach := newTestCoach(t, client)

	q, err := coach.GenerateQuestion(context.Background(), "Data Engineer", core.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, "What does CAP stand for?", q)
	assert.Contains(t, client.lastReq.User, "hard-level Data Engineer position")
}

func TestCoachGenerateQuestion_EmptyQuestion(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"optimized_response": "p"}`,
		"Okay, here's a question:",
	}}
	coach := newTestCoach(t, client)

	_, err := coach.GenerateQuestion(context.Background(), "Software Engineer", core.DifficultyEasy)
	assert.Error(t, err)
}

func TestCoachEvaluateAnswer(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"optimized_response": "p"}`,
		`{"feedback": "Clear and correct.", "recommendation": "harder"}`,
	}}
	coach := newTestCoach(t, client)

	fb, err := coach.EvaluateAnswer(context.Background(), "Software Engineer",
		"What is a mutex?", "A mutual exclusion lock.")
	require.NoError(t, err)
	assert.Equal(t, "Clear and correct.", fb.Text)
	assert.Equal(t, core.RecommendHarder, fb.Recommendation)
	assert.True(t, client.lastReq.JSONObject, "feedback must request a JSON object response")
}

func TestCoachEvaluateAnswer_CompletionError(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("rate limited")}
	coach := newTestCoach(t, client)

	_, err := coach.EvaluateAnswer(context.Background(), "Software Engineer", "Q", "A")
	assert.Error(t, err)
}
