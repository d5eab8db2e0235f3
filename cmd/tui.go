package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/routerdrawer/internal/app"
	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/desertthunder/routerdrawer/internal/timer"
	"github.com/desertthunder/routerdrawer/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if level, err := r.config.Level(); err == nil {
		shared.SetLogLevel(fileLogger, level)
	}
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := timer.NewLoop(64)
	defer loop.Close()

	a := app.New(app.Opts{Config: r.config, Scheduler: loop, Logger: r.logger})
	if err := a.Start(); err != nil {
		return err
	}
	defer a.Close()

	r.logger.Info("starting tui", "session", a.SessionID())

	model := ui.NewModel(ctx, a, loop)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
