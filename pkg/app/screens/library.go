package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mapleseed/pkg/app/components"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/services"
)

type LibraryScreen struct {
	controller *services.Controller
	titleList  *components.TitleList
	status     string
	width      int
	height     int
	err        error
}

func NewLibraryScreen(controller *services.Controller) *LibraryScreen {
	return &LibraryScreen{
		controller: controller,
		titleList:  components.NewTitleList(),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.titleList.Width = msg.Width - 4
		s.titleList.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.titleList.Prev()
		case "down", "j":
			s.titleList.Next()
		case "r":
			return s, s.loadLibrary
		case "d":
			selected := s.titleList.Selected()
			if selected != nil {
				return s, queueDownload(s.controller, selected.Title.ID, "game")
			}
		case "enter":
			selected := s.titleList.Selected()
			if selected != nil {
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: selected.Title.ID}
				}
			}
		}

	case libraryLoadedMsg:
		s.titleList.SetItems(msg.items)
		s.err = msg.err

	case downloadQueuedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Queued %s (%s)", msg.titleID, msg.contentType)
		}
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🎮 Library (%d titles)", len(s.titleList.Items)))

	var statusMsg string
	if s.err != nil {
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		statusMsg = styles.StatusWaiting.Render(s.status) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • enter: details • d: download • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, statusMsg, s.titleList.View(), help)
}

// Messages
type libraryLoadedMsg struct {
	items []components.TitleListItem
	err   error
}

type downloadQueuedMsg struct {
	titleID     string
	contentType string
	err         error
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	titles := s.controller.Library()

	items := make([]components.TitleListItem, len(titles))
	for i := range titles {
		title := titles[i]
		items[i] = components.TitleListItem{
			Title: &title,
			Packs: len(s.controller.FindGraphicPacks(title.ID)),
		}
	}

	return libraryLoadedMsg{items: items}
}

func queueDownload(controller *services.Controller, titleID, contentType string) tea.Cmd {
	return func() tea.Msg {
		err := controller.DownloadTitle(context.Background(), titleID, "", contentType, "")
		return downloadQueuedMsg{titleID: titleID, contentType: contentType, err: err}
	}
}
