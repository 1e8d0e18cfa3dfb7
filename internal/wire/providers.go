package wire

import (
	"io"
	"log/slog"
	"os"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/db"
	"github.com/abr-dev/interview-coach/internal/jobs"
	"github.com/abr-dev/interview-coach/internal/llm"
	"github.com/abr-dev/interview-coach/internal/logger"
	"github.com/abr-dev/interview-coach/internal/session"
	"github.com/abr-dev/interview-coach/internal/storage"
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	switch cfg.Logging.Output {
	case "stderr":
		return os.Stderr
	case "file":
		f, _ := os.OpenFile("coach.log", os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		return f
	default:
		return os.Stdout
	}
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideAIConfig(cfg *config.Config) config.AIConfig {
	return cfg.AI
}

func provideCoachConfig(cfg *config.Config) config.CoachConfig {
	return cfg.Coach
}

func provideModelProvider(cfg *config.Config) llm.ModelProvider {
	return llm.ModelProvider(cfg.AI.Provider)
}

func provideStore(dbConn *db.DB) storage.Store {
	return storage.NewStore(dbConn.DB)
}

func provideProfiler(client llm.CompletionClient, prompts *llm.PromptManager, provider llm.ModelProvider, cfg *config.Config, log *slog.Logger) *llm.Profiler {
	return llm.NewProfiler(client, prompts, provider, cfg.Coach.ProfileCacheTTL, log)
}

func provideDispatcher(job core.Job, cfg *config.Config, log *slog.Logger) *jobs.Dispatcher {
	return jobs.NewDispatcher(job, cfg.Coach.ArchiveWorkers, log)
}

func provideSessionManager(cfg *config.Config, log *slog.Logger) *session.Manager {
	return session.NewManager(cfg.Coach.SessionIdleTTL, log)
}
