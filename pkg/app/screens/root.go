package screens

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mapleseed/pkg/app/components"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/services"
)

type screenType int

const (
	statusView screenType = iota
	libraryView
	lookupView
	detailsView
)

const readyPollInterval = 100 * time.Millisecond

// Define shared message for screen switching
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type readyMsg struct {
	err error
}

type loadedTickMsg struct{}

type RootScreen struct {
	controller *services.Controller

	currentView screenType
	ready       *components.ReadyView
	library     *LibraryScreen
	lookup      *LookupScreen
	details     *DetailsScreen
	progress    *components.ProgressTracker

	width  int
	height int
}

func NewRootScreen(controller *services.Controller) *RootScreen {
	return &RootScreen{
		controller:  controller,
		currentView: statusView,
		ready:       components.NewReadyView(controller.Components(), 80),
		library:     NewLibraryScreen(controller),
		lookup:      NewLookupScreen(controller),
		progress:    components.NewProgressTracker(80),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		r.ready.Init(),
		waitForReady(r.controller),
		pollLoaded(),
		listenForProgress(r.controller),
	)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.ready.SetWidth(msg.Width)
		r.progress = components.NewProgressTracker(msg.Width - 4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if r.currentView != lookupView || !r.lookup.Typing() {
				return r, tea.Quit
			}
		case "tab":
			if r.currentView != libraryView && r.currentView != lookupView {
				break
			}
			if r.currentView == libraryView {
				r.currentView = lookupView
				cmd = r.lookup.Init()
			} else {
				r.currentView = libraryView
				cmd = r.library.Init()
			}
			return r, cmd
		}

	case loadedTickMsg:
		if r.ready.Ready() || r.ready.Err() != nil {
			return r, nil
		}
		r.ready.SetLoaded(r.controller.Loaded())
		return r, pollLoaded()

	case readyMsg:
		if msg.err != nil {
			r.ready.Fail(msg.err)
			return r, nil
		}
		r.ready.MarkReady()
		r.currentView = libraryView
		r.library.Update(r.sizeMsg())
		return r, r.library.Init()

	case services.DownloadProgress:
		r.progress.Update(msg)
		return r, listenForProgress(r.controller)

	case SwitchScreenMsg:
		switch msg.Screen {
		case "library":
			r.currentView = libraryView
			cmd = r.library.Init()
		case "lookup":
			r.currentView = lookupView
			cmd = r.lookup.Init()
		case "details":
			if titleID, ok := msg.Data.(string); ok {
				r.details = NewDetailsScreen(r.controller, titleID, r.progress)
				r.currentView = detailsView
				r.details.Update(r.sizeMsg())
				cmd = r.details.Init()
			}
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case statusView:
		return r, r.ready.Update(msg)
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	case lookupView:
		newModel, newCmd := r.lookup.Update(msg)
		r.lookup = newModel.(*LookupScreen)
		return r, newCmd
	case detailsView:
		if r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: r.width, Height: r.height}
}

func (r *RootScreen) View() string {
	var content string
	switch r.currentView {
	case statusView:
		header := styles.TitleStyle.Render("🍁 MapleSeed")
		help := styles.HelpStyle.Render("q: quit")
		content = fmt.Sprintf("%s\n\n%s\n%s", header, r.ready.View(), help)
		return content
	case libraryView:
		content = r.library.View()
	case lookupView:
		content = r.lookup.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
		return content
	}

	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), content)
}

func (r *RootScreen) renderTabs() string {
	libraryTab := "Library"
	lookupTab := "Lookup"

	if r.currentView == libraryView {
		libraryTab = styles.ActiveTabStyle.Render(libraryTab)
		lookupTab = styles.InactiveTabStyle.Render(lookupTab)
	} else {
		libraryTab = styles.InactiveTabStyle.Render(libraryTab)
		lookupTab = styles.ActiveTabStyle.Render(lookupTab)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, libraryTab, lookupTab)
}

// Commands

func waitForReady(controller *services.Controller) tea.Cmd {
	return func() tea.Msg {
		<-controller.Done()
		return readyMsg{err: controller.Err()}
	}
}

func pollLoaded() tea.Cmd {
	return tea.Tick(readyPollInterval, func(time.Time) tea.Msg {
		return loadedTickMsg{}
	})
}

func listenForProgress(controller *services.Controller) tea.Cmd {
	ch := controller.Progress()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		progress, ok := <-ch
		if !ok {
			return nil
		}
		return progress
	}
}
