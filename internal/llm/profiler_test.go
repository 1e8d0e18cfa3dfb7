package llm

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned responses and counts calls. Used by the profiler
// and coach tests instead of a live completion endpoint.
type fakeClient struct {
	responses []string
	err       error
	calls     int
	lastReq   CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("fakeClient: no responses configured")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func newTestProfiler(t *testing.T, client CompletionClient, ttl time.Duration) *Profiler {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)
	return NewProfiler(client, pm, DefaultProvider, ttl, slog.Default())
}

func TestProfilerOptimize(t *testing.T) {
	client := &fakeClient{responses: []string{`{"optimized_response": "better prompt"}`}}
	p := newTestProfiler(t, client, time.Hour)

	got, err := p.Optimize(context.Background(), "raw prompt", "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, "better prompt", got)
	assert.True(t, client.lastReq.JSONObject)
}

func TestProfilerOptimize_CacheHit(t *testing.T) {
	client := &fakeClient{responses: []string{`{"optimized_response": "better prompt"}`}}
	p := newTestProfiler(t, client, time.Hour)

	for range 3 {
		got, err := p.Optimize(context.Background(), "raw prompt", "Software Engineer")
		require.NoError(t, err)
		assert.Equal(t, "better prompt", got)
	}
	assert.Equal(t, 1, client.calls, "repeated identical prompts must hit the cache")

	// A different job title is a different cache key.
	_, err := p.Optimize(context.Background(), "raw prompt", "Data Analyst")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestProfilerOptimize_Error(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("upstream down")}
	p := newTestProfiler(t, client, time.Hour)

	_, err := p.Optimize(context.Background(), "raw prompt", "Software Engineer")
	require.Error(t, err)
	// Failures must not be cached.
	client.err = nil
	client.responses = []string{`{"optimized_response": "recovered"}`}
	got, err := p.Optimize(context.Background(), "raw prompt", "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
}

func TestExtractOptimizedPrompt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		expectErr bool
	}{
		{
			name:  "top level field",
			input: `{"optimized_response": "x"}`,
			want:  "x",
		},
		{
			name:  "nested object payload",
			input: `{"response": {"optimized_response": "y"}}`,
			want:  "y",
		},
		{
			name:  "json-encoded string payload",
			input: `{"response": "{\"optimized_response\": \"z\"}"}`,
			want:  "z",
		},
		{
			name:  "fenced response",
			input: "```json\n{\"optimized_response\": \"x\"}\n```",
			want:  "x",
		},
		{
			name:      "not json",
			input:     "sure, here you go",
			expectErr: true,
		},
		{
			name:      "missing field",
			input:     `{"response": {"something_else": 1}}`,
			expectErr: true,
		},
		{
			name:      "empty object",
			input:     `{}`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractOptimizedPrompt(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
