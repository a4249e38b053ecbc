package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/data"
	"github.com/kerbaras/mapleseed/pkg/services"
)

// LookupScreen resolves a title id against the library and the catalog.
type LookupScreen struct {
	controller *services.Controller
	input      textinput.Model
	result     *lookupResultMsg
	searching  bool
	status     string
	width      int
	height     int
	err        error
}

func NewLookupScreen(controller *services.Controller) *LookupScreen {
	ti := textinput.New()
	ti.Placeholder = "Title id, e.g. 00050000101C9500"
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 30

	return &LookupScreen{
		controller: controller,
		input:      ti,
	}
}

func (s *LookupScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Typing reports whether key presses go to the id input.
func (s *LookupScreen) Typing() bool {
	return s.input.Focused()
}

func (s *LookupScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.searching {
			return s, nil
		}

		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				id := s.input.Value()
				if id != "" {
					s.searching = true
					s.status = ""
					return s, s.performLookup(id)
				}
			} else if s.result != nil && s.result.title != nil {
				titleID := s.result.title.ID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: titleID}
				}
			}

		case "a":
			if !s.input.Focused() && s.result != nil && s.result.title != nil {
				return s, addToLibrary(s.controller, *s.result.title)
			}

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				cmd = s.input.Focus()
			}
			return s, cmd
		}

	case lookupResultMsg:
		s.searching = false
		s.result = &msg
		s.err = msg.err
		if msg.title != nil {
			s.input.Blur()
		}

	case titleAddedMsg:
		s.err = msg.err
		if msg.err == nil {
			s.status = fmt.Sprintf("Added %s to library", msg.title.ID)
		}
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}

	return s, cmd
}

func (s *LookupScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("🔍 Title Lookup")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var statusMsg string
	if s.err != nil {
		statusMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	} else if s.status != "" {
		statusMsg = styles.StatusCompleted.Render(s.status) + "\n\n"
	}

	var resultView string
	switch {
	case s.searching:
		resultView = styles.StatusDownloading.Render("Looking up...")
	case s.result != nil && s.result.title != nil:
		resultView = s.renderResult()
	case s.result != nil && s.result.err == nil:
		resultView = styles.MutedStyle.Render("Title not found")
	}

	help := styles.HelpStyle.Render(
		"enter: look up/details • a: add to library • esc: switch focus • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\n%s", header, inputView, statusMsg, resultView, help)
}

func (s *LookupScreen) renderResult() string {
	title := s.result.title

	key := styles.MutedStyle.Render("Key: unknown")
	if s.result.key != nil {
		key = styles.MonoStyle.Render("Key: " + s.result.key.Key)
	}

	cardContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextStyle.Bold(true).Render(title.Name),
		styles.MonoStyle.Render(title.ID),
		styles.MutedStyle.Render(fmt.Sprintf("Region: %s • Product: %s", title.Region, title.ProductCode)),
		key,
		styles.MutedStyle.Render(fmt.Sprintf("Graphic packs: %d", s.result.packs)),
	)

	return styles.ActiveCardStyle.Width(s.width - 6).Render(cardContent)
}

// Messages
type lookupResultMsg struct {
	title *data.Title
	key   *data.TitleKey
	packs int
	err   error
}

type titleAddedMsg struct {
	title data.Title
	err   error
}

// Commands
func (s *LookupScreen) performLookup(id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		titleRes := s.controller.FindTitleAsync(ctx, id)
		keyRes := s.controller.FindTitleKeyAsync(ctx, id)

		tr, kr := <-titleRes, <-keyRes
		if tr.Err != nil {
			return lookupResultMsg{err: tr.Err}
		}
		if tr.Title == nil {
			return lookupResultMsg{}
		}
		// a missing key does not hide the title
		return lookupResultMsg{
			title: tr.Title,
			key:   kr.Key,
			packs: len(s.controller.FindGraphicPacks(tr.Title.ID)),
		}
	}
}

func addToLibrary(controller *services.Controller, title data.Title) tea.Cmd {
	return func() tea.Msg {
		return titleAddedMsg{title: title, err: controller.AddOwnedTitle(title)}
	}
}
