package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/services"
)

// ReadyView shows a spinner and a progress bar while the databases load.
type ReadyView struct {
	spinner  spinner.Model
	required []services.Component
	loaded   map[services.Component]bool
	ready    bool
	err      error
	width    int
}

func NewReadyView(required []services.Component, width int) *ReadyView {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.StatusDownloading),
	)
	return &ReadyView{
		spinner:  s,
		required: required,
		loaded:   make(map[services.Component]bool),
		width:    width,
	}
}

func (r *ReadyView) Init() tea.Cmd {
	return r.spinner.Tick
}

// Update advances the spinner while loading.
func (r *ReadyView) Update(msg tea.Msg) tea.Cmd {
	if r.ready || r.err != nil {
		return nil
	}
	var cmd tea.Cmd
	r.spinner, cmd = r.spinner.Update(msg)
	return cmd
}

func (r *ReadyView) SetWidth(width int) {
	r.width = width
}

// SetLoaded replaces the set of components that finished loading.
func (r *ReadyView) SetLoaded(loaded []services.Component) {
	r.loaded = make(map[services.Component]bool, len(loaded))
	for _, c := range loaded {
		r.loaded[c] = true
	}
}

func (r *ReadyView) MarkReady() {
	r.ready = true
	r.SetLoaded(r.required)
}

func (r *ReadyView) count() int {
	n := 0
	for _, c := range r.required {
		if r.loaded[c] {
			n++
		}
	}
	return n
}

func (r *ReadyView) Fail(err error) {
	r.err = err
}

func (r *ReadyView) Ready() bool {
	return r.ready
}

func (r *ReadyView) Err() error {
	return r.err
}

func (r *ReadyView) View() string {
	var b strings.Builder

	switch {
	case r.err != nil:
		b.WriteString(styles.StatusError.Render("Databases failed to load"))
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)))
		b.WriteString("\n")
	case r.ready:
		b.WriteString(styles.StatusCompleted.Render("Ready"))
		b.WriteString("\n")
	default:
		b.WriteString(fmt.Sprintf("%s Loading databases (%d/%d)", r.spinner.View(), r.count(), len(r.required)))
		b.WriteString("\n")
		if bar := renderProgressBar(r.count(), len(r.required), r.width-4); bar != "" {
			b.WriteString(bar)
			b.WriteString("\n")
		}
	}

	for _, c := range r.required {
		status := "waiting"
		if r.loaded[c] {
			status = "ready"
		}
		b.WriteString(styles.StatusStyle(status).Render(fmt.Sprintf("  %s: %s", c, status)))
		b.WriteString("\n")
	}
	return b.String()
}
