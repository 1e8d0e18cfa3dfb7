package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CoachConfig holds interview tuning parameters. It is read from an optional
// coach.yml next to the binary; every field has a working default so the file
// can be absent entirely.
type CoachConfig struct {
	QuestionsPerSession int           `yaml:"questions_per_session"`
	SessionIdleTTL      time.Duration `yaml:"session_idle_ttl"`
	ProfileCacheTTL     time.Duration `yaml:"profile_cache_ttl"`
	MaxAnswerLength     int           `yaml:"max_answer_length"`
	ArchiveWorkers      int           `yaml:"archive_workers"`
}

// DefaultCoachConfig returns the tuning parameters used when no coach.yml is
// present.
func DefaultCoachConfig() CoachConfig {
	return CoachConfig{
		QuestionsPerSession: 5,
		SessionIdleTTL:      30 * time.Minute,
		ProfileCacheTTL:     time.Hour,
		MaxAnswerLength:     8000,
		ArchiveWorkers:      2,
	}
}

// LoadCoachConfig reads and validates coach.yml at the given path. A missing
// file yields the defaults.
func LoadCoachConfig(path string) (CoachConfig, error) {
	cfg := DefaultCoachConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects tuning values the session engine cannot work with.
func (c CoachConfig) Validate() error {
	if c.QuestionsPerSession < 1 || c.QuestionsPerSession > 20 {
		return fmt.Errorf("questions_per_session must be between 1 and 20, got %d", c.QuestionsPerSession)
	}
	if c.SessionIdleTTL < time.Minute {
		return fmt.Errorf("session_idle_ttl must be at least 1m, got %s", c.SessionIdleTTL)
	}
	if c.ProfileCacheTTL <= 0 {
		return fmt.Errorf("profile_cache_ttl must be positive, got %s", c.ProfileCacheTTL)
	}
	if c.MaxAnswerLength < 1 {
		return fmt.Errorf("max_answer_length must be positive, got %d", c.MaxAnswerLength)
	}
	if c.ArchiveWorkers < 1 {
		return fmt.Errorf("archive_workers must be at least 1, got %d", c.ArchiveWorkers)
	}
	return nil
}
