// Package storage persists completed interview sessions to Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/abr-dev/interview-coach/internal/core"
)

// ErrSessionNotFound is returned when no archived session matches the id.
var ErrSessionNotFound = errors.New("archived session not found")

// ArchivedSession is the database projection of a completed session.
type ArchivedSession struct {
	ID         uuid.UUID `db:"id"`
	JobTitle   string    `db:"job_title"`
	Seniority  string    `db:"seniority"`
	Questions  int       `db:"questions"`
	StartedAt  time.Time `db:"started_at"`
	ArchivedAt time.Time `db:"archived_at"`
}

// Store defines the interface for all database operations.
type Store interface {
	SaveSession(ctx context.Context, s *core.Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*core.Session, error)
	ListSessions(ctx context.Context, limit int) ([]ArchivedSession, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// SaveSession inserts the session and its exchanges in one transaction.
func (s *postgresStore) SaveSession(ctx context.Context, session *core.Session) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, job_title, seniority, questions, started_at, archived_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.JobTitle, session.Seniority, len(session.Exchanges), session.CreatedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for _, e := range session.Exchanges {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exchanges (session_id, number, difficulty, question, answer, feedback, recommendation, asked_at, answered_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			session.ID, e.Number, e.Difficulty, e.Question, e.Answer, e.Feedback, e.Recommendation, e.AskedAt, e.AnsweredAt)
		if err != nil {
			return fmt.Errorf("failed to insert exchange %d: %w", e.Number, err)
		}
	}

	return tx.Commit()
}

// GetSession loads an archived session with its full transcript.
func (s *postgresStore) GetSession(ctx context.Context, id uuid.UUID) (*core.Session, error) {
	var head ArchivedSession
	err := s.db.GetContext(ctx, &head,
		`SELECT id, job_title, seniority, questions, started_at, archived_at FROM sessions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT number, difficulty, question, answer, feedback, recommendation, asked_at, answered_at
		 FROM exchanges WHERE session_id = $1 ORDER BY number`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchanges: %w", err)
	}
	defer rows.Close()

	session := &core.Session{
		ID:             head.ID,
		JobTitle:       head.JobTitle,
		Seniority:      head.Seniority,
		TotalQuestions: head.Questions,
		QuestionNum:    head.Questions,
		Complete:       true,
		CreatedAt:      head.StartedAt,
		LastActivity:   head.ArchivedAt,
	}

	for rows.Next() {
		var e core.Exchange
		var difficulty, recommendation string
		if err := rows.Scan(&e.Number, &difficulty, &e.Question, &e.Answer, &e.Feedback, &recommendation, &e.AskedAt, &e.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		e.Difficulty = core.Difficulty(difficulty)
		e.Recommendation = core.Recommendation(recommendation)
		session.Exchanges = append(session.Exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchanges: %w", err)
	}

	return session, nil
}

// ListSessions returns the most recently archived sessions.
func (s *postgresStore) ListSessions(ctx context.Context, limit int) ([]ArchivedSession, error) {
	if limit <= 0 {
		limit = 20
	}

	var sessions []ArchivedSession
	err := s.db.SelectContext(ctx, &sessions,
		`SELECT id, job_title, seniority, questions, started_at, archived_at
		 FROM sessions ORDER BY archived_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
