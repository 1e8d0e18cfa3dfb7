package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abr-dev/interview-coach/internal/config"
	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/metrics"
)

var (
	ErrEmptyJobTitle    = errors.New("job title must not be empty")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
	ErrAnswerTooLong    = errors.New("answer exceeds the maximum length")
	ErrUnknownSeniority = errors.New("unknown seniority level")
)

// AnswerResult is what submitting one answer produces: the recorded exchange
// and either the next question or the completed session.
type AnswerResult struct {
	Exchange     core.Exchange
	NextQuestion string
	Complete     bool
	Session      *core.Session
}

// Service runs the interview loop on top of the session store and the coach.
type Service struct {
	cfg        config.CoachConfig
	coach      core.Coach
	sessions   *Manager
	dispatcher core.JobDispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewService wires the session engine together. The dispatcher receives
// completed sessions for archival and may be nil in surfaces that don't
// archive (e.g. tests).
func NewService(cfg config.CoachConfig, coach core.Coach, sessions *Manager, dispatcher core.JobDispatcher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		cfg:        cfg,
		coach:      coach,
		sessions:   sessions,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// Start creates a session for the given role and generates its first
// question.
func (svc *Service) Start(ctx context.Context, jobTitle, seniority string) (*core.Session, error) {
	jobTitle = strings.TrimSpace(jobTitle)
	if jobTitle == "" {
		return nil, ErrEmptyJobTitle
	}
	if !validSeniority(seniority) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeniority, seniority)
	}

	difficulty := core.DifficultyForSeniority(seniority)

	question, err := svc.coach.GenerateQuestion(ctx, jobTitle, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to generate first question: %w", err)
	}

	now := time.Now()
	s := &core.Session{
		ID:              uuid.New(),
		JobTitle:        jobTitle,
		Seniority:       seniority,
		Difficulty:      difficulty,
		QuestionNum:     1,
		TotalQuestions:  svc.cfg.QuestionsPerSession,
		PendingQuestion: question,
		CreatedAt:       now,
		LastActivity:    now,
	}
	svc.sessions.add(s)

	svc.metrics.IncrementSessionsStarted()
	svc.metrics.IncrementQuestionsAsked()
	svc.logger.Info("session started",
		"session_id", s.ID,
		"job_title", jobTitle,
		"seniority", seniority,
		"difficulty", difficulty,
	)

	return snapshotLocked(s), nil
}

// Get returns a snapshot of a session.
func (svc *Service) Get(id uuid.UUID) (*core.Session, error) {
	return svc.sessions.Snapshot(id)
}

// SubmitAnswer records the candidate's answer to the pending question,
// obtains feedback, adjusts the difficulty, and either generates the next
// question or completes the session. A failed round trip to the coach leaves
// the session state unchanged so the candidate can retry.
func (svc *Service) SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (*AnswerResult, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}
	if len(answer) > svc.cfg.MaxAnswerLength {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrAnswerTooLong, len(answer), svc.cfg.MaxAnswerLength)
	}

	e, err := svc.sessions.get(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.s
	if s.Complete {
		return nil, ErrComplete
	}
	s.LastActivity = time.Now()

	feedback, err := svc.coach.EvaluateAnswer(ctx, s.JobTitle, s.PendingQuestion, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	svc.metrics.IncrementAnswersEvaluated()

	exchange := core.Exchange{
		Number:         s.QuestionNum,
		Difficulty:     s.Difficulty,
		Question:       s.PendingQuestion,
		Answer:         answer,
		Feedback:       feedback.Text,
		Recommendation: feedback.Recommendation,
		AskedAt:        s.LastActivity,
		AnsweredAt:     time.Now(),
	}
	adjusted := s.Difficulty.Adjust(feedback.Recommendation)
	complete := len(s.Exchanges)+1 >= s.TotalQuestions

	// Generate the follow-up before committing anything so a failed round
	// trip leaves the session unchanged and the candidate can resubmit.
	var next string
	if !complete {
		next, err = svc.coach.GenerateQuestion(ctx, s.JobTitle, adjusted)
		if err != nil {
			return nil, fmt.Errorf("failed to generate next question: %w", err)
		}
	}

	s.Exchanges = append(s.Exchanges, exchange)
	s.Difficulty = adjusted

	result := &AnswerResult{Exchange: exchange}

	if complete {
		s.Complete = true
		s.PendingQuestion = ""
		result.Complete = true
		svc.metrics.IncrementSessionsCompleted()
		svc.logger.Info("session complete", "session_id", s.ID, "job_title", s.JobTitle)
		svc.archive(ctx, snapshotLocked(s))
	} else {
		s.QuestionNum++
		s.PendingQuestion = next
		result.NextQuestion = next
		svc.metrics.IncrementQuestionsAsked()
	}

	s.LastActivity = time.Now()
	result.Session = snapshotLocked(s)
	return result, nil
}

// Summary returns the completed session transcript.
func (svc *Service) Summary(id uuid.UUID) (*core.Session, error) {
	s, err := svc.sessions.Snapshot(id)
	if err != nil {
		return nil, err
	}
	if !s.Complete {
		return nil, ErrNotComplete
	}
	return s, nil
}

// Reset drops a session entirely, the "start over" operation.
func (svc *Service) Reset(id uuid.UUID) error {
	if err := svc.sessions.Remove(id); err != nil {
		return err
	}
	svc.logger.Info("session reset", "session_id", id)
	return nil
}

func (svc *Service) archive(ctx context.Context, s *core.Session) {
	if svc.dispatcher == nil {
		return
	}
	if err := svc.dispatcher.Dispatch(ctx, s); err != nil {
		// Archival is best effort; the candidate already has their summary.
		svc.logger.Error("failed to dispatch archive job", "session_id", s.ID, "error", err)
	}
}

func validSeniority(seniority string) bool {
	for _, s := range core.Seniorities() {
		if s == seniority {
			return true
		}
	}
	return false
}
