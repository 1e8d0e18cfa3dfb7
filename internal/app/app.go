// Package app initializes and orchestrates the main components of the
// interview coach service. It ties together the configuration, the session
// engine, the archive workers, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/db"
	"github.com/abr-dev/interview-coach/internal/jobs"
	"github.com/abr-dev/interview-coach/internal/llm"
	"github.com/abr-dev/interview-coach/internal/server"
	"github.com/abr-dev/interview-coach/internal/session"
	"github.com/abr-dev/interview-coach/internal/storage"
)

// App holds the main application components. Sessions and Store are exported
// for the terminal UI and the CLI, which drive the interview engine and the
// archive in-process instead of over HTTP.
type App struct {
	Cfg      *config.Config
	Sessions *session.Service
	Store    storage.Store
	Logger   *slog.Logger

	ctx        context.Context
	server     *server.Server
	dispatcher *jobs.Dispatcher
	manager    *session.Manager
	dbConn     *db.DB
	prompts    *llm.PromptManager
}

// NewApp assembles the application from its wired components.
func NewApp(
	ctx context.Context,
	cfg *config.Config,
	srv *server.Server,
	sessions *session.Service,
	store storage.Store,
	dispatcher *jobs.Dispatcher,
	manager *session.Manager,
	dbConn *db.DB,
	prompts *llm.PromptManager,
	logger *slog.Logger,
) *App {
	return &App{
		Cfg:        cfg,
		Sessions:   sessions,
		Store:      store,
		Logger:     logger,
		ctx:        ctx,
		server:     srv,
		dispatcher: dispatcher,
		manager:    manager,
		dbConn:     dbConn,
		prompts:    prompts,
	}
}

// Start verifies the app's dependencies and runs the HTTP server. It blocks
// until the server stops.
func (a *App) Start() error {
	a.Logger.Info("starting interview coach",
		"server_port", a.Cfg.Server.Port,
		"provider", a.Cfg.AI.Provider,
		"model", a.Cfg.AI.Model,
		"questions_per_session", a.Cfg.Coach.QuestionsPerSession,
	)

	if err := a.Preflight(); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	if err := a.server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Preflight runs the startup checks concurrently: the archive database must
// answer a ping and every prompt template the coach uses must render.
func (a *App) Preflight() error {
	ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.dbConn.PingContext(ctx); err != nil {
			return fmt.Errorf("archive database is unreachable: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		provider := llm.ModelProvider(a.Cfg.AI.Provider)
		data := map[string]string{"JobTitle": "probe", "Difficulty": "easy", "Question": "q", "Answer": "a"}
		for _, key := range []llm.PromptKey{
			llm.QuestionRawPrompt,
			llm.QuestionSystemPrompt,
			llm.FeedbackRawPrompt,
			llm.FeedbackSystemPrompt,
			llm.ProfileSystemPrompt,
		} {
			if _, err := a.prompts.Render(key, provider, data); err != nil {
				return fmt.Errorf("prompt %q does not render: %w", key, err)
			}
		}
		return nil
	})

	return g.Wait()
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.Logger.Info("shutting down interview coach")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Keep going so the remaining components still shut down.
	}

	// Drain the archive queue, then stop the idle sweeper.
	a.dispatcher.Stop()
	a.manager.Stop()

	if serverErr != nil {
		a.Logger.Error("interview coach stopped with errors", "error", serverErr)
		return serverErr
	}

	a.Logger.Info("interview coach stopped successfully")
	return nil
}
