package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mapleseed/pkg/app/styles"
	"github.com/kerbaras/mapleseed/pkg/data"
)

type TitleListItem struct {
	Title *data.Title
	Packs int
}

// TitleList is a selectable list of title cards.
type TitleList struct {
	Items         []TitleListItem
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewTitleList() *TitleList {
	return &TitleList{
		Items:        []TitleListItem{},
		Width:        80,
		Height:       20,
		EmptyMessage: "No titles in library",
	}
}

func (m *TitleList) SetItems(items []TitleListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *TitleList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *TitleList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *TitleList) Selected() *TitleListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *TitleList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyMessage)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		name := item.Title.Name
		if name == "" {
			name = "Unknown title"
		}

		region := item.Title.Region
		if region == "" {
			region = "?"
		}
		meta := styles.MutedStyle.Render(fmt.Sprintf("Region: %s • Product: %s • Packs: %d",
			region, item.Title.ProductCode, item.Packs))

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TextStyle.Bold(true).Render(name),
			styles.MonoStyle.Render(item.Title.ID),
			meta,
		)

		card := cardStyle.Width(m.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}
