package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/abr-dev/interview-coach/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	AI       AIConfig
	Coach    CoachConfig
	Logging  logger.Config
	Database DBConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AuthConfig holds the application password gate settings.
type AuthConfig struct {
	AppPassword string
}

// AIConfig holds the completion provider settings.
type AIConfig struct {
	Provider          string
	Model             string
	OpenAIAPIKey      string
	BaseURL           string
	QuestionMaxTokens int
	Temperature       float64
}

// DBConfig holds the Postgres connection settings for the session archive.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence. Interview tuning
// lives in a separate coach.yml, loaded by LoadCoachConfig.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("MODEL_PROVIDER", "openai")
	viper.SetDefault("MODEL_NAME", "gpt-4o-mini")
	viper.SetDefault("QUESTION_MAX_TOKENS", 70)
	viper.SetDefault("MODEL_TEMPERATURE", 0.7)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "coach")
	viper.SetDefault("DB_NAME", "coach")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")
	viper.SetDefault("COACH_CONFIG_PATH", "coach.yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A missing .env is fine; a broken one is not.
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	}

	if viper.GetString("OPENAI_API_KEY") == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}
	if viper.GetString("APP_PASSWORD") == "" {
		return nil, fmt.Errorf("APP_PASSWORD must be set")
	}

	provider := viper.GetString("MODEL_PROVIDER")
	baseURL := viper.GetString("MODEL_BASE_URL")
	if baseURL == "" {
		var err error
		baseURL, err = defaultBaseURL(provider)
		if err != nil {
			return nil, err
		}
	}

	coachCfg, err := LoadCoachConfig(viper.GetString("COACH_CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("failed to load coach config: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Auth: AuthConfig{
			AppPassword: viper.GetString("APP_PASSWORD"),
		},
		AI: AIConfig{
			Provider:          provider,
			Model:             viper.GetString("MODEL_NAME"),
			OpenAIAPIKey:      viper.GetString("OPENAI_API_KEY"),
			BaseURL:           baseURL,
			QuestionMaxTokens: viper.GetInt("QUESTION_MAX_TOKENS"),
			Temperature:       viper.GetFloat64("MODEL_TEMPERATURE"),
		},
		Coach: coachCfg,
		Logging: logger.Config{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Database: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}, nil
}

// defaultBaseURL resolves the completion endpoint for known OpenAI-compatible
// providers. An explicit MODEL_BASE_URL always wins.
func defaultBaseURL(provider string) (string, error) {
	switch provider {
	case "openai":
		return "", nil // go-openai default
	case "deepseek":
		return "https://api.deepseek.com/v1", nil
	case "groq":
		return "https://api.groq.com/openai/v1", nil
	case "ollama":
		return "http://localhost:11434/v1", nil
	default:
		return "", fmt.Errorf("unsupported model provider: %s (set MODEL_BASE_URL for custom OpenAI-compatible endpoints)", provider)
	}
}
