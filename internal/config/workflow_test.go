package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// The review workflow is consumed by an external runtime, so the only thing
// we can verify is its contract: it triggers on pull_request and forwards
// exactly two named secrets to the review action.
func TestReviewWorkflowContract(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", ".github", "workflows", "ai-review.yml"))
	require.NoError(t, err)

	var wf struct {
		On   map[string]any `yaml:"on"`
		Jobs map[string]struct {
			Steps []struct {
				Uses string            `yaml:"uses"`
				Env  map[string]string `yaml:"env"`
			} `yaml:"steps"`
		} `yaml:"jobs"`
	}
	require.NoError(t, yaml.Unmarshal(data, &wf))

	assert.Contains(t, wf.On, "pull_request")

	review, ok := wf.Jobs["review"]
	require.True(t, ok, "review job missing")
	require.Len(t, review.Steps, 2)

	var reviewEnv map[string]string
	for _, step := range review.Steps {
		if step.Env != nil {
			reviewEnv = step.Env
		}
	}
	require.NotNil(t, reviewEnv, "no step forwards secrets")
	assert.Len(t, reviewEnv, 2)
	assert.Contains(t, reviewEnv, "GITHUB_TOKEN")
	assert.Contains(t, reviewEnv, "OPENAI_API_KEY")
}
