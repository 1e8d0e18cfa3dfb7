package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/storage"
)

// ArchiveJob persists completed sessions to the database so transcripts
// survive the in-memory session store.
type ArchiveJob struct {
	store  storage.Store
	logger *slog.Logger
}

// NewArchiveJob creates the archival job backed by the given store.
func NewArchiveJob(store storage.Store, logger *slog.Logger) core.Job {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ArchiveJob{store: store, logger: logger}
}

// Run writes the session and its exchanges to the archive.
func (j *ArchiveJob) Run(ctx context.Context, s *core.Session) error {
	if s == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if !s.Complete {
		return fmt.Errorf("refusing to archive incomplete session %s", s.ID)
	}

	saveCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := j.store.SaveSession(saveCtx, s); err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}

	j.logger.Info("session archived", "session_id", s.ID, "exchanges", len(s.Exchanges))
	return nil
}
