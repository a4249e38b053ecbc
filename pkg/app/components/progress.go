package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/services"
)

// ProgressTracker keeps the latest progress of each queued download.
type ProgressTracker struct {
	downloads map[string]*services.DownloadProgress
	completed []services.DownloadProgress
	width     int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		downloads: make(map[string]*services.DownloadProgress),
		width:     width,
	}
}

func progressKey(p services.DownloadProgress) string {
	return p.TitleID + ":" + p.ContentType
}

// Update records p. Completed downloads leave the active set.
func (p *ProgressTracker) Update(progress services.DownloadProgress) {
	key := progressKey(progress)
	if progress.Status == "complete" {
		delete(p.downloads, key)
		p.completed = append(p.completed, progress)
		return
	}
	prog := progress // Copy
	p.downloads[key] = &prog
}

func (p *ProgressTracker) Clear() {
	p.downloads = make(map[string]*services.DownloadProgress)
	p.completed = nil
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.downloads) > 0
}

func (p *ProgressTracker) Completed() int {
	return len(p.completed)
}

func (p *ProgressTracker) View() string {
	if len(p.downloads) == 0 && len(p.completed) == 0 {
		return ""
	}

	keys := make([]string, 0, len(p.downloads))
	for key := range p.downloads {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Downloads"))
	b.WriteString("\n")

	for _, key := range keys {
		progress := p.downloads[key]
		b.WriteString(styles.MonoStyle.Render(fmt.Sprintf("%s (%s)", progress.TitleID, progress.ContentType)))
		b.WriteString(" ")
		b.WriteString(styles.StatusStyle(progress.Status).Render(progress.Status))
		b.WriteString("\n")

		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error)))
			b.WriteString("\n")
		}
	}

	for _, done := range p.completed {
		line := fmt.Sprintf("%s (%s) %s, %s", done.TitleID, done.ContentType, done.Status, humanize.Bytes(uint64(done.Bytes)))
		b.WriteString(styles.StatusCompleted.Render(line))
		b.WriteString("\n")
		if done.Path != "" {
			b.WriteString(styles.MutedStyle.Render("  " + done.Path))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
