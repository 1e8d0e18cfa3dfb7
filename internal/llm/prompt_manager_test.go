package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-dev/interview-coach/internal/core"
)

func TestPromptManager_RendersEmbeddedPrompts(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	raw, err := pm.Render(QuestionRawPrompt, DefaultProvider, map[string]any{
		"JobTitle":   "Site Reliability Engineer",
		"Difficulty": core.DifficultyHard,
	})
	require.NoError(t, err)
	assert.Contains(t, raw, "hard-level Site Reliability Engineer position")

	system, err := pm.Render(FeedbackSystemPrompt, DefaultProvider, map[string]any{
		"JobTitle": "Site Reliability Engineer",
	})
	require.NoError(t, err)
	assert.Contains(t, system, "Site Reliability Engineer")
	assert.Contains(t, system, "'easier', 'same', or 'harder'")
}

func TestPromptManager_UnknownProviderFallsBack(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	// deepseek has no dedicated template; the default must be served.
	out, err := pm.Render(QuestionSystemPrompt, ModelProvider("deepseek"), map[string]any{
		"JobTitle": "Backend Developer",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Backend Developer")
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Get(PromptKey("nonexistent"), DefaultProvider)
	assert.Error(t, err)
}
