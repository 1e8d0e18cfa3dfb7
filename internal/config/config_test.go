package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CoachConfig
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			config:  DefaultCoachConfig(),
			wantErr: false,
		},
		{
			name: "zero questions",
			config: CoachConfig{
				QuestionsPerSession: 0,
				SessionIdleTTL:      time.Hour,
				ProfileCacheTTL:     time.Hour,
				MaxAnswerLength:     100,
				ArchiveWorkers:      1,
			},
			wantErr: true,
		},
		{
			name: "too many questions",
			config: CoachConfig{
				QuestionsPerSession: 50,
				SessionIdleTTL:      time.Hour,
				ProfileCacheTTL:     time.Hour,
				MaxAnswerLength:     100,
				ArchiveWorkers:      1,
			},
			wantErr: true,
		},
		{
			name: "idle TTL too short",
			config: CoachConfig{
				QuestionsPerSession: 5,
				SessionIdleTTL:      time.Second,
				ProfileCacheTTL:     time.Hour,
				MaxAnswerLength:     100,
				ArchiveWorkers:      1,
			},
			wantErr: true,
		},
		{
			name: "no archive workers",
			config: CoachConfig{
				QuestionsPerSession: 5,
				SessionIdleTTL:      time.Hour,
				ProfileCacheTTL:     time.Hour,
				MaxAnswerLength:     100,
				ArchiveWorkers:      0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadCoachConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadCoachConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultCoachConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coach.yml")
		content := "questions_per_session: 3\nsession_idle_ttl: 10m\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadCoachConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.QuestionsPerSession)
		assert.Equal(t, 10*time.Minute, cfg.SessionIdleTTL)
		// Untouched fields keep their defaults.
		assert.Equal(t, time.Hour, cfg.ProfileCacheTTL)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coach.yml")
		require.NoError(t, os.WriteFile(path, []byte("questions_per_session: 0\n"), 0o600))

		_, err := LoadCoachConfig(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coach.yml")
		require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o600))

		_, err := LoadCoachConfig(path)
		assert.Error(t, err)
	})
}
