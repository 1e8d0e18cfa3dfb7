package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abr-dev/interview-coach/internal/core"
)

var (
	listLimit  int
	outputJSON bool
)

// Color definitions
var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect archived interview sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recently archived sessions",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		sessions, err := store.ListSessions(ctx, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(sessions)
		}

		if len(sessions) == 0 {
			dimColor.Println("No archived sessions yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tJOB TITLE\tSENIORITY\tQUESTIONS\tARCHIVED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				s.ID,
				s.JobTitle,
				s.Seniority,
				s.Questions,
				s.ArchivedAt.Format(time.RFC822),
			)
		}
		return w.Flush()
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print the full transcript of an archived session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid session id %q: %w", args[0], err)
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		session, err := store.GetSession(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(session)
		}

		titleColor.Printf("Interview: %s (%s)\n", session.JobTitle, session.Seniority)
		dimColor.Printf("Session %s, started %s\n\n", session.ID, session.CreatedAt.Format(time.RFC822))

		rendered, err := glamour.Render(transcriptMarkdown(session), "dark")
		if err != nil {
			// Fall back to the raw markdown when the terminal renderer fails.
			fmt.Println(transcriptMarkdown(session))
			return nil
		}
		fmt.Println(rendered)
		return nil
	},
}

// transcriptMarkdown formats a completed session as markdown for glamour.
func transcriptMarkdown(session *core.Session) string {
	var b strings.Builder

	for _, e := range session.Exchanges {
		fmt.Fprintf(&b, "## Question %d (%s)\n\n%s\n\n", e.Number, e.Difficulty, e.Question)
		fmt.Fprintf(&b, "**Answer**\n\n%s\n\n", e.Answer)
		fmt.Fprintf(&b, "**Feedback**\n\n%s\n\n", e.Feedback)
		fmt.Fprintf(&b, "*Next question: %s*\n\n", e.Recommendation)
	}

	return b.String()
}

func init() { //nolint:gochecknoinits // Cobra command registration
	sessionsListCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of sessions to list")
	sessionsCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	rootCmd.AddCommand(sessionsCmd)
}
