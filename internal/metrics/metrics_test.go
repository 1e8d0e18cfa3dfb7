package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := New()

	m.IncrementSessionsStarted()
	m.IncrementSessionsStarted()
	m.IncrementQuestionsAsked()
	m.IncrementAPICalls()
	m.IncrementAPIFailures()

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.SessionsStarted)
	assert.EqualValues(t, 0, snap.SessionsCompleted)
	assert.EqualValues(t, 1, snap.QuestionsAsked)
	assert.EqualValues(t, 1, snap.APICallsTotal)
	assert.EqualValues(t, 1, snap.APICallsFailed)
	assert.False(t, snap.LastUpdate.IsZero())
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementQuestionsAsked()
			_ = m.Snapshot()
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 50, m.Snapshot().QuestionsAsked)
}
