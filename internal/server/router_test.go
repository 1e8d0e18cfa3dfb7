package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/metrics"
	"github.com/abr-dev/interview-coach/internal/server/handler"
	"github.com/abr-dev/interview-coach/internal/session"
)

const testPassword = "open-sesame"

type scriptedCoach struct {
	questions int
}

func (c *scriptedCoach) GenerateQuestion(_ context.Context, jobTitle string, level core.Difficulty) (string, error) {
	c.questions++
	return fmt.Sprintf("Question %d for a %s-level %s?", c.questions, level, jobTitle), nil
}

func (c *scriptedCoach) EvaluateAnswer(_ context.Context, _, _, _ string) (*core.Feedback, error) {
	return &core.Feedback{Text: "Solid answer.", Recommendation: core.RecommendHarder}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Auth:  config.AuthConfig{AppPassword: testPassword},
		Coach: config.DefaultCoachConfig(),
	}
	cfg.Coach.QuestionsPerSession = 2

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	manager := session.NewManager(cfg.Coach.SessionIdleTTL, logger)
	t.Cleanup(manager.Stop)

	svc := session.NewService(cfg.Coach, &scriptedCoach{}, manager, nil, m, logger)
	return NewRouter(cfg, svc, m, logger)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(handler.PasswordHeader, testPassword)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHealthEndpointIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresPassword(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"missing password", "", http.StatusUnauthorized},
		{"wrong password", "guess", http.StatusUnauthorized},
		{"correct password", testPassword, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
			if tt.password != "" {
				req.Header.Set(handler.PasswordHeader, tt.password)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	var started struct {
		ID              string `json:"id"`
		JobTitle        string `json:"job_title"`
		Difficulty      string `json:"difficulty"`
		QuestionNum     int    `json:"question_num"`
		TotalQuestions  int    `json:"total_questions"`
		PendingQuestion string `json:"pending_question"`
	}
	rec := doJSON(t, r, http.MethodPost, "/api/v1/sessions",
		map[string]string{"job_title": "Backend Engineer", "seniority": "Senior"}, &started)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "hard", started.Difficulty)
	assert.Equal(t, 1, started.QuestionNum)
	assert.Equal(t, 2, started.TotalQuestions)
	assert.Contains(t, started.PendingQuestion, "Backend Engineer")

	// Summary is a conflict until the session completes.
	rec = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+started.ID+"/summary", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var answered struct {
		Exchange struct {
			Feedback       string `json:"feedback"`
			Recommendation string `json:"recommendation"`
		} `json:"exchange"`
		NextQuestion string `json:"next_question"`
		Complete     bool   `json:"complete"`
	}
	rec = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+started.ID+"/answer",
		map[string]string{"answer": "I would shard by tenant."}, &answered)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Solid answer.", answered.Exchange.Feedback)
	assert.False(t, answered.Complete)
	assert.NotEmpty(t, answered.NextQuestion)

	// next_question is omitempty, so clear the stale value from the previous
	// decode before reusing the struct.
	answered.NextQuestion = ""
	rec = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+started.ID+"/answer",
		map[string]string{"answer": "Use idempotency keys."}, &answered)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, answered.Complete)
	assert.Empty(t, answered.NextQuestion)

	// A third answer is rejected.
	rec = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+started.ID+"/answer",
		map[string]string{"answer": "One more."}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var summary core.Session
	rec = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+started.ID+"/summary", nil, &summary)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, summary.Exchanges, 2)
	assert.True(t, summary.Complete)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+started.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+started.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty job title", map[string]string{"job_title": "  ", "seniority": "Mid"}},
		{"unknown seniority", map[string]string{"job_title": "SRE", "seniority": "Principal"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/v1/sessions", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	t.Run("malformed session id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty answer", func(t *testing.T) {
		var started struct {
			ID string `json:"id"`
		}
		rec := doJSON(t, r, http.MethodPost, "/api/v1/sessions",
			map[string]string{"job_title": "SRE", "seniority": "Mid"}, &started)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+started.ID+"/answer",
			map[string]string{"answer": "   "}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/sessions",
		map[string]string{"job_title": "Data Engineer", "seniority": "Junior"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var snap metrics.Snapshot
	rec = doJSON(t, r, http.MethodGet, "/api/v1/metrics", nil, &snap)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), snap.SessionsStarted)
	assert.Equal(t, int64(1), snap.QuestionsAsked)
}
