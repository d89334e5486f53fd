// cmd/onlyfoods/main.go
//
// Entry point for the OnlyFoods terminal client.
//
// Flow:
// 1. Load .env if one is present (pipeline URLs usually live there)
// 2. Build the config from the environment and ~/.onlyfoods
// 3. Open the diagnostic logbook and start the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/RohithNair27/WTF-Where-is-the-food/internal/config"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/logbook"
	"github.com/RohithNair27/WTF-Where-is-the-food/internal/tui"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(homeDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "Set %s and %s (a .env file works too).\n",
			config.EnvPipeline1, config.EnvPipeline2)
		os.Exit(1)
	}

	book, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, book),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
