package main

import (
	"github.com/abr-dev/interview-coach/internal/app"
	"github.com/abr-dev/interview-coach/internal/core"
	"github.com/abr-dev/interview-coach/internal/session"
)

// Indicates that the core application services have been initialized.
type appInitializedMsg struct {
	app *app.App
	err error
}

// Indicates that a new interview session started with its first question.
type sessionStartedMsg struct {
	session *core.Session
	err     error
}

// Carries the feedback on a submitted answer plus the next question.
type answerEvaluatedMsg struct {
	result *session.AnswerResult
	err    error
}

// A generic error message for reporting failures from commands.
type errorMsg struct{ err error }

func (e errorMsg) Error() string {
	return e.err.Error()
}
