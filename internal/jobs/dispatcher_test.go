package jobs

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-dev/interview-coach/internal/core"
)

// countingJob records which sessions it ran, optionally blocking until
// released.
type countingJob struct {
	mu      sync.Mutex
	ran     []uuid.UUID
	release chan struct{}
}

func (j *countingJob) Run(_ context.Context, s *core.Session) error {
	if j.release != nil {
		<-j.release
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ran = append(j.ran, s.ID)
	return nil
}

func (j *countingJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.ran)
}

func completedSession() *core.Session {
	return &core.Session{ID: uuid.New(), Complete: true}
}

func TestDispatcherProcessesJobs(t *testing.T) {
	job := &countingJob{}
	d := NewDispatcher(job, 2, slog.Default())

	for range 5 {
		require.NoError(t, d.Dispatch(context.Background(), completedSession()))
	}
	d.Stop()

	assert.Equal(t, 5, job.count())
}

func TestDispatcherStopWaitsForInFlightJobs(t *testing.T) {
	job := &countingJob{release: make(chan struct{})}
	d := NewDispatcher(job, 1, slog.Default())

	require.NoError(t, d.Dispatch(context.Background(), completedSession()))

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Stop returned while a job was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(job.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after jobs finished")
	}
	assert.Equal(t, 1, job.count())
}

func TestDispatcherDefaultsToOneWorker(t *testing.T) {
	job := &countingJob{}
	d := NewDispatcher(job, 0, slog.Default())
	require.NoError(t, d.Dispatch(context.Background(), completedSession()))
	d.Stop()
	assert.Equal(t, 1, job.count())
}
