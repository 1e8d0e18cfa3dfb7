package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/session"
)

// SessionHandler exposes the interview session lifecycle over HTTP.
type SessionHandler struct {
	sessions *session.Service
	logger   *slog.Logger
}

// NewSessionHandler creates a session handler backed by the session engine.
func NewSessionHandler(sessions *session.Service, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type startRequest struct {
	JobTitle  string `json:"job_title"`
	Seniority string `json:"seniority"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type sessionResponse struct {
	ID              uuid.UUID       `json:"id"`
	JobTitle        string          `json:"job_title"`
	Seniority       string          `json:"seniority"`
	Difficulty      core.Difficulty `json:"difficulty"`
	QuestionNum     int             `json:"question_num"`
	TotalQuestions  int             `json:"total_questions"`
	PendingQuestion string          `json:"pending_question,omitempty"`
	Complete        bool            `json:"complete"`
}

type answerResponse struct {
	Exchange     core.Exchange   `json:"exchange"`
	NextQuestion string          `json:"next_question,omitempty"`
	Complete     bool            `json:"complete"`
	Session      sessionResponse `json:"session"`
}

func toSessionResponse(s *core.Session) sessionResponse {
	return sessionResponse{
		ID:              s.ID,
		JobTitle:        s.JobTitle,
		Seniority:       s.Seniority,
		Difficulty:      s.Difficulty,
		QuestionNum:     s.QuestionNum,
		TotalQuestions:  s.TotalQuestions,
		PendingQuestion: s.PendingQuestion,
		Complete:        s.Complete,
	}
}

// Start creates a new interview session and returns its first question.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.sessions.Start(r.Context(), req.JobTitle, req.Seniority)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(s))
}

// Get returns the current state of a session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(s))
}

// Answer records the candidate's answer and returns feedback plus either the
// next question or the completed session.
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessions.SubmitAnswer(r.Context(), id, req.Answer)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, answerResponse{
		Exchange:     result.Exchange,
		NextQuestion: result.NextQuestion,
		Complete:     result.Complete,
		Session:      toSessionResponse(result.Session),
	})
}

// Summary returns the full transcript of a completed session.
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	s, err := h.sessions.Summary(id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

// Reset drops a session, the "start over" operation.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Reset(id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrComplete):
		respondError(w, http.StatusConflict, "session already complete")
	case errors.Is(err, session.ErrNotComplete):
		respondError(w, http.StatusConflict, "session not complete yet")
	case errors.Is(err, session.ErrEmptyJobTitle),
		errors.Is(err, session.ErrEmptyAnswer),
		errors.Is(err, session.ErrAnswerTooLong),
		errors.Is(err, session.ErrUnknownSeniority):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("session operation failed", "error", err)
		respondError(w, http.StatusBadGateway, "coach is unavailable, try again")
	}
}
