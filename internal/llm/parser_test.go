package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-dev/interview-coach/internal/core"
)

func TestParseFeedback(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantText  string
		wantRec   core.Recommendation
		expectErr bool
	}{
		{
			name:     "valid JSON",
			input:    `{"feedback": "Solid answer with concrete examples.", "recommendation": "harder"}`,
			wantText: "Solid answer with concrete examples.",
			wantRec:  core.RecommendHarder,
		},
		{
			name:     "JSON wrapped in fence",
			input:    "```json\n{\"feedback\": \"Too vague.\", \"recommendation\": \"easier\"}\n```",
			wantText: "Too vague.",
			wantRec:  core.RecommendEasier,
		},
		{
			name:     "uppercase recommendation normalized",
			input:    `{"feedback": "Fine.", "recommendation": "Harder"}`,
			wantText: "Fine.",
			wantRec:  core.RecommendHarder,
		},
		{
			name:     "invalid recommendation normalized to same",
			input:    `{"feedback": "Fine.", "recommendation": "way harder"}`,
			wantText: "Fine.",
			wantRec:  core.RecommendSame,
		},
		{
			name:     "missing feedback field gets placeholder",
			input:    `{"recommendation": "same"}`,
			wantText: "No feedback provided.",
			wantRec:  core.RecommendSame,
		},
		{
			name:     "plain text falls back to keyword scan",
			input:    "The answer was shallow, the next question should be easier.",
			wantText: "The answer was shallow, the next question should be easier.",
			wantRec:  core.RecommendEasier,
		},
		{
			name:     "plain text without keyword defaults to same",
			input:    "Good structure and clear delivery.",
			wantText: "Good structure and clear delivery.",
			wantRec:  core.RecommendSame,
		},
		{
			name:      "empty response is an error",
			input:     "   ",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := parseFeedback(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, fb.Text)
			assert.Equal(t, tt.wantRec, fb.Recommendation)
		})
	}
}

func TestScanRecommendation(t *testing.T) {
	// "easier"/"harder" must win over an incidental "same" in the text.
	assert.Equal(t, core.RecommendEasier,
		scanRecommendation("At the same time, go easier on the next one."))
	assert.Equal(t, core.RecommendHarder,
		scanRecommendation("Push HARDER next round."))
}

func TestStripMarkdownFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"single line fence", "```{\"a\":1}```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripMarkdownFence(tt.input))
		})
	}
}
