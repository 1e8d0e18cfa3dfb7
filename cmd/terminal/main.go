package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	slog.Info("interview coach terminal starting up")

	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, dracula)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("COACH_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(ThemeCyan)
	}

	theme := ThemeName(selectedTheme)
	validTheme := false
	for _, t := range ListThemes() {
		if t == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	slog.Info("interview coach terminal shut down successfully")
}
