package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mapleseed/pkg/app/components"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/services"
)

// StatusScreen waits for the controller and quits once it is ready or
// failed, leaving the final view on the terminal.
type StatusScreen struct {
	controller *services.Controller
	ready      *components.ReadyView
}

func NewStatusScreen(controller *services.Controller) *StatusScreen {
	return &StatusScreen{
		controller: controller,
		ready:      components.NewReadyView(controller.Components(), 40),
	}
}

func (s *StatusScreen) Init() tea.Cmd {
	return tea.Batch(s.ready.Init(), waitForReady(s.controller), pollLoaded())
}

func (s *StatusScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return s, tea.Quit
		}

	case loadedTickMsg:
		if s.ready.Ready() || s.ready.Err() != nil {
			return s, nil
		}
		s.ready.SetLoaded(s.controller.Loaded())
		return s, pollLoaded()

	case readyMsg:
		if msg.err != nil {
			s.ready.Fail(msg.err)
		} else {
			s.ready.MarkReady()
		}
		return s, tea.Quit
	}

	return s, s.ready.Update(msg)
}

func (s *StatusScreen) View() string {
	return fmt.Sprintf("%s\n%s", styles.TitleStyle.Render("🍁 MapleSeed"), s.ready.View())
}
