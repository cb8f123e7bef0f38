package main

import (
	"fmt"
	"os"

	"safetydesk/cmd"
	"safetydesk/internal/api"
	"safetydesk/internal/logging"
	"safetydesk/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(config.LogPath, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting safetydesk",
		zap.String("version", version),
		zap.String("api", config.APIBaseURL))

	client := api.NewClient(config.APIBaseURL, config.RequestTimeout, log)

	p := tea.NewProgram(ui.New(client, log, config.IncludeArchived), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
