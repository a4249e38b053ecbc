package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mapleseed/pkg/app/screens"
	"github.com/kerbaras/mapleseed/pkg/services"
)

type App struct {
	controller *services.Controller
}

func NewApp(controller *services.Controller) *App {
	return &App{controller: controller}
}

// Run starts the controller and the full-screen TUI.
func (a *App) Run(ctx context.Context) error {
	a.controller.Start(ctx)

	model := screens.NewRootScreen(a.controller)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// WaitReady shows only the readiness view and exits once the controller is
// ready or failed.
func (a *App) WaitReady(ctx context.Context) error {
	a.controller.Start(ctx)

	model := screens.NewStatusScreen(a.controller)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return a.controller.Err()
}
