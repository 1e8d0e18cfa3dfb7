package main

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/abr-dev/interview-coach/internal/app"
	"github.com/abr-dev/interview-coach/internal/core"
)

const asciiLogo = `
╔══════════════════════════════════════════════════════════════════╗
║                                                                  ║
║    ██╗███╗   ██╗████████╗███████╗██████╗ ██╗   ██╗██╗███████╗    ║
║    ██║████╗  ██║╚══██╔══╝██╔════╝██╔══██╗██║   ██║██║██╔════╝    ║
║    ██║██╔██╗ ██║   ██║   █████╗  ██████╔╝██║   ██║██║█████╗      ║
║    ██║██║╚██╗██║   ██║   ██╔══╝  ██╔══██╗╚██╗ ██╔╝██║██╔══╝      ║
║    ██║██║ ╚████║   ██║   ███████╗██║  ██║ ╚████╔╝ ██║███████╗    ║
║    ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚══════╝╚═╝  ╚═╝  ╚═══╝  ╚═╝╚══════╝    ║
║                                                                  ║
║                      AI INTERVIEW COACH v1.0                     ║
║                                                                  ║
╚══════════════════════════════════════════════════════════════════╝
`

type uiState int

const (
	stateBooting uiState = iota
	statePassword
	stateSetup
	stateInterview
	stateDone
)

type model struct {
	styles styles
	app    *app.App
	state  uiState

	// UI components
	viewport  viewport.Model
	textarea  textarea.Model
	spinner   spinner.Model
	progress  progress.Model
	isLoading bool

	// Interview state
	sessionID uuid.UUID
	session   *core.Session
	history   []string
}

func initialModel(theme ThemeName) *model {
	styles := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "Type here..."
	ta.Focus()
	ta.Prompt = styles.prompt.Render("► ")
	ta.CharLimit = 4000
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	pr := progress.New(progress.WithDefaultGradient())

	return &model{
		styles:    styles,
		state:     stateBooting,
		textarea:  ta,
		spinner:   sp,
		progress:  pr,
		isLoading: true,
		history:   []string{styles.ascii.Render(asciiLogo), "", "⚙ WARMING UP THE INTERVIEW COACH..."},
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(initializeAppCmd(), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" || m.isLoading {
				return m, nil
			}
			m.textarea.Reset()
			return m, m.processInput(input)
		}

	case appInitializedMsg:
		m.isLoading = false
		if msg.err != nil {
			fmt.Fprintf(os.Stderr, "ERROR initializing app: %v\n", msg.err)
			m.appendHistory("", m.styles.error.Render(msg.err.Error()))
			return m, nil
		}
		m.app = msg.app
		m.state = statePassword
		m.appendHistory("",
			m.styles.success.Render("✓ SYSTEM ONLINE"),
			"",
			m.styles.prompt.Render("Enter the app password to begin."))
		return m, nil

	case sessionStartedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendHistory("", m.styles.error.Render("⚠ "+msg.err.Error()))
			return m, nil
		}
		m.state = stateInterview
		m.sessionID = msg.session.ID
		m.session = msg.session
		m.appendHistory("",
			m.styles.success.Render(fmt.Sprintf("✓ Interview started: %s (%s)", msg.session.JobTitle, msg.session.Seniority)),
			"",
			m.renderQuestion(msg.session))
		return m, nil

	case answerEvaluatedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendHistory("", m.styles.error.Render("⚠ "+msg.err.Error()))
			return m, nil
		}
		m.session = msg.result.Session
		m.appendHistory("",
			m.styles.command.Render("FEEDBACK"),
			msg.result.Exchange.Feedback)
		if msg.result.Complete {
			m.state = stateDone
			m.appendHistory("",
				m.styles.success.Render("✓ INTERVIEW COMPLETE"),
				m.renderSummary(msg.result.Session),
				m.styles.inactive.Render("Type /start to practice another role, or /exit to leave."))
		} else {
			m.appendHistory("", m.renderQuestion(msg.result.Session))
		}
		return m, nil

	case errorMsg:
		m.isLoading = false
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", msg.err)
		m.appendHistory("", m.styles.error.Render("⚠ "+msg.err.Error()))
		return m, nil

	case tea.WindowSizeMsg:
		m.styles.header.Width(msg.Width - 4)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 10
		m.textarea.SetWidth(msg.Width - 10)
		m.progress.Width = msg.Width / 3
		m.viewport.SetContent(strings.Join(m.history, "\n"))
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) View() string {
	if m.app == nil {
		return fmt.Sprintf("\n  %s BOOTING SYSTEM...\n\n", m.spinner.View())
	}

	var statusParts []string
	switch {
	case m.state == statePassword:
		statusParts = append(statusParts, m.styles.inactive.Render("○ LOCKED"))
	case m.session != nil:
		statusParts = append(statusParts,
			fmt.Sprintf("ROLE: %s (%s)", m.session.JobTitle, m.session.Seniority),
			fmt.Sprintf("DIFFICULTY: %s", m.session.Difficulty),
			m.progress.ViewAs(float64(len(m.session.Exchanges))/float64(m.session.TotalQuestions)),
		)
	default:
		statusParts = append(statusParts, "No interview in progress")
	}
	statusParts = append(statusParts, fmt.Sprintf("🤖 %s (%s)", m.app.Cfg.AI.Model, m.app.Cfg.AI.Provider))

	status := m.styles.inactive.Render(strings.Join(statusParts, " │ "))

	var loadingIndicator string
	if m.isLoading {
		loadingIndicator = " " + m.spinner.View() + " " + m.styles.success.Render("THINKING...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.viewport.Render(m.viewport.View()),
			"",
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.textarea.View(),
					loadingIndicator,
				),
			),
			status,
		),
	)
}

func (m *model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) renderQuestion(s *core.Session) string {
	header := m.styles.question.Render(
		fmt.Sprintf("QUESTION %d/%d (%s)", s.QuestionNum, s.TotalQuestions, s.Difficulty))
	return header + "\n" + s.PendingQuestion
}

func (m *model) renderSummary(s *core.Session) string {
	var b strings.Builder
	for _, e := range s.Exchanges {
		fmt.Fprintf(&b, "## Question %d (%s)\n\n%s\n\n", e.Number, e.Difficulty, e.Question)
		fmt.Fprintf(&b, "**Feedback**\n\n%s\n\n", e.Feedback)
	}

	rendered, err := glamour.Render(b.String(), "dark")
	if err != nil {
		return b.String()
	}
	return rendered
}

func (m *model) processInput(input string) tea.Cmd {
	if m.state == statePassword {
		// Do not echo password attempts into the transcript.
		if subtle.ConstantTimeCompare([]byte(input), []byte(m.app.Cfg.Auth.AppPassword)) != 1 {
			m.appendHistory("", m.styles.error.Render("✗ Password incorrect, try again."))
			return nil
		}
		m.state = stateSetup
		m.appendHistory("",
			m.styles.success.Render("✓ UNLOCKED"),
			"",
			m.styles.inactive.Render("Start an interview with: /start [Junior|Mid|Senior] [job title]"))
		return nil
	}

	m.appendHistory(m.styles.prompt.Render("► ") + input)

	if strings.HasPrefix(input, "/") {
		return m.processCommand(input)
	}

	// Bare input during an interview is the answer to the pending question.
	if m.state == stateInterview {
		m.isLoading = true
		m.appendHistory("", m.styles.command.Render("→ EVALUATING..."))
		return tea.Batch(m.spinner.Tick, submitAnswerCmd(m.app, m.sessionID, input))
	}

	m.appendHistory("", m.styles.inactive.Render("No interview in progress. Use /start [Junior|Mid|Senior] [job title]."))
	return nil
}

func (m *model) processCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "/start":
		if len(args) < 2 {
			m.appendHistory(m.styles.error.Render("USAGE: /start [Junior|Mid|Senior] [job title]"))
			return nil
		}
		seniority := args[0]
		jobTitle := strings.Join(args[1:], " ")
		m.isLoading = true
		m.appendHistory("", m.styles.command.Render(fmt.Sprintf("→ Preparing a %s interview for %q...", seniority, jobTitle)))
		return tea.Batch(m.spinner.Tick, startSessionCmd(m.app, jobTitle, seniority))

	case "/summary":
		if m.session == nil || !m.session.Complete {
			m.appendHistory(m.styles.error.Render("The interview is not finished yet."))
			return nil
		}
		m.appendHistory("", m.renderSummary(m.session))
		return nil

	case "/reset":
		if m.session != nil {
			if err := m.app.Sessions.Reset(m.sessionID); err != nil {
				m.app.Logger.Warn("failed to reset session", "error", err)
			}
		}
		m.state = stateSetup
		m.session = nil
		m.sessionID = uuid.Nil
		m.appendHistory("", m.styles.success.Render("✓ Session cleared. Use /start to begin a new interview."))
		return nil

	case "/help", "/h":
		helpText := m.styles.success.Render("AVAILABLE COMMANDS:") + `

  /start [level] [job title]   Begin a new interview (level: Junior, Mid, Senior).
  /summary                     Show the transcript of a finished interview.
  /reset                       Abandon the current interview.
  /help                        Show this help message.
  /exit, /quit                 Leave the coach.

  ` + m.styles.inactive.Render("TIP: During an interview, just type your answer and press enter.")
		m.appendHistory("", helpText)
		return nil

	case "/exit", "/quit":
		return tea.Quit

	default:
		m.appendHistory("", m.styles.error.Render(fmt.Sprintf("UNKNOWN COMMAND: %s", command)), m.styles.inactive.Render("Type /help for assistance."))
		return nil
	}
}
