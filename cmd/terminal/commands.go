package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abr-dev/interview-coach/internal/app"
	"github.com/abr-dev/interview-coach/internal/wire"
)

func initializeAppCmd() tea.Cmd {
	return func() tea.Msg {
		appInstance, _, err := wire.InitializeApp(context.Background())
		if err != nil {
			return appInitializedMsg{err: err}
		}
		return appInitializedMsg{app: appInstance}
	}
}

func startSessionCmd(app *app.App, jobTitle, seniority string) tea.Cmd {
	return func() tea.Msg {
		s, err := app.Sessions.Start(context.Background(), jobTitle, seniority)
		return sessionStartedMsg{session: s, err: err}
	}
}

func submitAnswerCmd(app *app.App, id uuid.UUID, answer string) tea.Cmd {
	return func() tea.Msg {
		result, err := app.Sessions.SubmitAnswer(context.Background(), id, answer)
		return answerEvaluatedMsg{result: result, err: err}
	}
}
