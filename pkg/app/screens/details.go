package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mapleseed/pkg/app/components"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/services"
)

type DetailsScreen struct {
	controller   *services.Controller
	titleID      string
	title        *data.Title
	key          *data.TitleKey
	packs        []data.GraphicPack
	selectedPack int
	progress     *components.ProgressTracker
	status       string
	width        int
	height       int
	err          error
}

func NewDetailsScreen(controller *services.Controller, titleID string, progress *components.ProgressTracker) *DetailsScreen {
	return &DetailsScreen{
		controller: controller,
		titleID:    titleID,
		progress:   progress,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.loadDetails
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selectedPack > 0 {
				s.selectedPack--
			}
		case "down", "j":
			if s.selectedPack < len(s.packs)-1 {
				s.selectedPack++
			}
		case "r":
			return s, s.loadDetails
		case "d":
			return s, queueDownload(s.controller, s.titleID, "game")
		case "u":
			return s, queueDownload(s.controller, s.titleID, "update")
		case "c":
			return s, queueDownload(s.controller, s.titleID, "dlc")
		case "a":
			if s.title != nil {
				return s, addToLibrary(s.controller, *s.title)
			}
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "library", Data: nil}
			}
		}

	case detailsLoadedMsg:
		s.title = msg.title
		s.key = msg.key
		s.packs = msg.packs
		s.err = msg.err

	case downloadQueuedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Queued %s", msg.contentType)
		}

	case titleAddedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = "Added to library"
		}
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	if s.title == nil {
		if s.err != nil {
			return styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		}
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🎮 %s", s.title.Name))

	var statusMsg string
	if s.err != nil {
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		statusMsg = styles.StatusWaiting.Render(s.status) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • d: game • u: update • c: dlc • a: add to library • r: refresh • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s\n%s",
		header,
		statusMsg,
		s.renderTitleInfo(),
		s.renderPackList(),
		s.progress.View(),
		help,
	)
}

func (s *DetailsScreen) renderTitleInfo() string {
	key := styles.MutedStyle.Render("Key: unknown")
	if s.key != nil {
		key = styles.MonoStyle.Render("Key: " + s.key.Key)
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.MonoStyle.Render(s.title.ID),
		styles.MutedStyle.Render(fmt.Sprintf("Region: %s • Product: %s • Version: %s",
			s.title.Region, s.title.ProductCode, s.title.Version)),
		key,
	)

	return styles.CardStyle.Width(s.width - 4).Render(info)
}

func (s *DetailsScreen) renderPackList() string {
	if len(s.packs) == 0 {
		return styles.MutedStyle.Render("No graphic packs")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Graphic packs (%d):", len(s.packs))))
	b.WriteString("\n\n")

	for i, pack := range s.packs {
		line := pack.Name
		if pack.Folder != "" {
			line = fmt.Sprintf("%s [%s]", line, pack.Folder)
		}
		if i == s.selectedPack {
			line = styles.SelectedStyle.Render(line)
			if pack.Description != "" {
				line += "\n" + styles.MutedStyle.Render("  "+pack.Description)
			}
		} else {
			line = styles.TextStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// Messages
type detailsLoadedMsg struct {
	title *data.Title
	key   *data.TitleKey
	packs []data.GraphicPack
	err   error
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	ctx := context.Background()

	title, err := s.controller.FindTitle(ctx, s.titleID)
	if err != nil {
		return detailsLoadedMsg{err: err}
	}
	if title == nil {
		return detailsLoadedMsg{err: fmt.Errorf("title %s not found", s.titleID)}
	}

	packs := s.controller.FindGraphicPacks(title.ID)
	key, err := s.controller.FindTitleKey(ctx, title.ID)
	return detailsLoadedMsg{title: title, key: key, packs: packs, err: err}
}
