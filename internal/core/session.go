// Package core defines the essential interfaces and data structures that form
// the backbone of the application. These components are designed to be
// abstract, allowing for flexible and decoupled implementations of the
// application's logic.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one completed question/answer round, including the coach's
// feedback and the difficulty recommendation it produced.
type Exchange struct {
	Number         int            `json:"number"`
	Difficulty     Difficulty     `json:"difficulty"`
	Question       string         `json:"question"`
	Answer         string         `json:"answer"`
	Feedback       string         `json:"feedback"`
	Recommendation Recommendation `json:"recommendation"`
	AskedAt        time.Time      `json:"asked_at"`
	AnsweredAt     time.Time      `json:"answered_at"`
}

// Session is one candidate's interview practice run. It lives in memory for
// the duration of the interaction and is archived once complete.
type Session struct {
	ID              uuid.UUID  `json:"id"`
	JobTitle        string     `json:"job_title"`
	Seniority       string     `json:"seniority"`
	Difficulty      Difficulty `json:"difficulty"`
	QuestionNum     int        `json:"question_num"`
	TotalQuestions  int        `json:"total_questions"`
	PendingQuestion string     `json:"pending_question"`
	Exchanges       []Exchange `json:"exchanges"`
	Complete        bool       `json:"complete"`
	CreatedAt       time.Time  `json:"created_at"`
	LastActivity    time.Time  `json:"last_activity"`
}

// Remaining reports how many questions are still to be answered.
func (s *Session) Remaining() int {
	if s.Complete {
		return 0
	}
	return s.TotalQuestions - len(s.Exchanges)
}

// Feedback is the coach's evaluation of a single answer.
type Feedback struct {
	Text           string
	Recommendation Recommendation
}
