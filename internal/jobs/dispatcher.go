// Package jobs defines background tasks such as session archival.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abr-dev/interview-coach/internal/core"
)

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines for processing completed sessions.
type dispatcher struct {
	job        core.Job           // Job implementation executed by each worker.
	queue      chan *core.Session // Queue of completed sessions.
	maxWorkers int                // Number of concurrent workers.
	wg         sync.WaitGroup     // Tracks active workers for graceful shutdown.
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(job core.Job, maxWorkers int, logger *slog.Logger) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		job:        job,
		maxWorkers: maxWorkers,
		queue:      make(chan *core.Session, 64),
		logger:     logger,
	}
	d.startWorkers()
	return &Dispatcher{d}
}

// Dispatcher is the exported handle; it exists so the wire graph has a
// concrete type that still satisfies core.JobDispatcher.
type Dispatcher struct {
	*dispatcher
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes sessions from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting archive worker", "id", workerID)

	for s := range d.queue {
		d.processSession(workerID, s)
	}

	d.logger.Info("shutting down archive worker", "id", workerID)
}

func (d *dispatcher) processSession(workerID int, s *core.Session) {
	d.logger.Info("worker processing session",
		"worker_id", workerID,
		"session_id", s.ID,
	)

	if err := d.job.Run(context.Background(), s); err != nil {
		d.logger.Error("archive job failed",
			"session_id", s.ID,
			"error", err,
		)
	}
}

// Dispatch queues a completed session for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, s *core.Session) error {
	d.logger.Info("queuing archive job", "session_id", s.ID)

	select {
	case d.queue <- s:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new archive job")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to
// finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for jobs to finish")
	close(d.queue)
	d.wg.Wait()
	d.logger.Info("all archive jobs have finished")
}
