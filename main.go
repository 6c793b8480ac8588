package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tutortui/api"
	"tutortui/config"
	"tutortui/mcp"
	"tutortui/model"
	"tutortui/storage"
	"tutortui/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	history, err := storage.NewHistoryStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer history.Close()

	apiClient := api.NewClient(cfg.BackendURL)
	tokens := config.NewTokenStore(cfg.DataDir())
	if token := tokens.Load(); token != "" {
		apiClient.SetToken(token)
	}

	tools := mcp.NewClient(cfg.MCPEndpoint())

	controller := model.NewModel(cfg, apiClient, tools, tokens, history, Version)

	p := tea.NewProgram(
		ui.NewAppView(controller),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running tutortui: %v\n", err)
		os.Exit(1)
	}
}
