//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/abr-dev/interview-coach/internal/app"
	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/db"
	"github.com/abr-dev/interview-coach/internal/jobs"
	"github.com/abr-dev/interview-coach/internal/llm"
	"github.com/abr-dev/interview-coach/internal/metrics"
	"github.com/abr-dev/interview-coach/internal/server"
	"github.com/abr-dev/interview-coach/internal/session"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		config.LoadConfig,
		db.NewDatabase,
		metrics.New,
		llm.NewCompletionClient,
		llm.NewPromptManager,
		llm.NewCoach,
		jobs.NewArchiveJob,
		session.NewService,
		wire.Bind(new(core.JobDispatcher), new(*jobs.Dispatcher)),
		provideStore,
		provideProfiler,
		provideDispatcher,
		provideSessionManager,
		provideModelProvider,
		provideAIConfig,
		provideCoachConfig,
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
		provideDBConfig,
	)
	return &app.App{}, nil, nil
}
