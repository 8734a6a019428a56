package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILogFile = "./tmp/shelf-tui.log"

// TUI launches the interactive terminal menu.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logFile := r.config.Log.File
	if logFile == "" {
		logFile = defaultTUILogFile
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	catalog, err := r.openCatalog()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, catalog)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
