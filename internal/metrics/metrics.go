// Package metrics keeps lightweight in-process counters for the coach.
package metrics

import (
	"sync"
	"time"
)

// Metrics tracks service activity since startup.
type Metrics struct {
	mu sync.RWMutex

	sessionsStarted   int64
	sessionsCompleted int64
	questionsAsked    int64
	answersEvaluated  int64
	apiCallsTotal     int64
	apiCallsFailed    int64
	lastUpdate        time.Time
}

// Snapshot is a read-only copy of the counters, suitable for serialization.
type Snapshot struct {
	SessionsStarted   int64     `json:"sessions_started"`
	SessionsCompleted int64     `json:"sessions_completed"`
	QuestionsAsked    int64     `json:"questions_asked"`
	AnswersEvaluated  int64     `json:"answers_evaluated"`
	APICallsTotal     int64     `json:"api_calls_total"`
	APICallsFailed    int64     `json:"api_calls_failed"`
	LastUpdate        time.Time `json:"last_update"`
}

func New() *Metrics {
	return &Metrics{lastUpdate: time.Now()}
}

func (m *Metrics) IncrementSessionsStarted() { m.bump(&m.sessionsStarted) }

func (m *Metrics) IncrementSessionsCompleted() { m.bump(&m.sessionsCompleted) }

func (m *Metrics) IncrementQuestionsAsked() { m.bump(&m.questionsAsked) }

func (m *Metrics) IncrementAnswersEvaluated() { m.bump(&m.answersEvaluated) }

func (m *Metrics) IncrementAPICalls() { m.bump(&m.apiCallsTotal) }

func (m *Metrics) IncrementAPIFailures() { m.bump(&m.apiCallsFailed) }

func (m *Metrics) bump(counter *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter++
	m.lastUpdate = time.Now()
}

// Snapshot returns a consistent copy of all counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:   m.sessionsStarted,
		SessionsCompleted: m.sessionsCompleted,
		QuestionsAsked:    m.questionsAsked,
		AnswersEvaluated:  m.answersEvaluated,
		APICallsTotal:     m.apiCallsTotal,
		APICallsFailed:    m.apiCallsFailed,
		LastUpdate:        m.lastUpdate,
	}
}
