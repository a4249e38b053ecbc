package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/mapleseed/pkg/data"
)

func sampleItems(n int) []TitleListItem {
	ids := []string{"00050000101C9500", "0005000010145D00", "000500001010EC00"}
	items := make([]TitleListItem, n)
	for i := range items {
		items[i] = TitleListItem{Title: &data.Title{ID: ids[i%len(ids)], Name: "Title " + ids[i%len(ids)]}}
	}
	return items
}

func TestNewTitleList(t *testing.T) {
	list := NewTitleList()

	if list == nil {
		t.Fatal("Expected title list to be created")
	}
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
	if list.Selected() != nil {
		t.Error("Expected no selection on an empty list")
	}
}

func TestSetItemsClampsSelection(t *testing.T) {
	list := NewTitleList()

	list.SetItems(sampleItems(3))
	list.SelectedIndex = 2

	list.SetItems(sampleItems(1))
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be clamped to 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0 for empty list, got %d", list.SelectedIndex)
	}
}

func TestNextPrevWrap(t *testing.T) {
	list := NewTitleList()
	list.SetItems(sampleItems(3))

	list.Next()
	list.Next()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex 2, got %d", list.SelectedIndex)
	}

	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected wrap to 0, got %d", list.SelectedIndex)
	}

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected wrap to 2, got %d", list.SelectedIndex)
	}

	selected := list.Selected()
	if selected == nil || selected.Title.ID != "000500001010EC00" {
		t.Errorf("Unexpected selection: %+v", selected)
	}
}

func TestNextPrevEmpty(t *testing.T) {
	list := NewTitleList()

	list.Next()
	list.Prev()

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
}

func TestTitleListView(t *testing.T) {
	list := NewTitleList()

	if view := list.View(); !strings.Contains(view, "No titles in library") {
		t.Error("Expected empty message")
	}

	items := sampleItems(2)
	items[0].Packs = 3
	items[1].Title.Name = ""
	list.SetItems(items)

	view := list.View()
	if !strings.Contains(view, "00050000101C9500") {
		t.Error("Expected title id in view")
	}
	if !strings.Contains(view, "Packs: 3") {
		t.Error("Expected pack count in view")
	}
	if !strings.Contains(view, "Unknown title") {
		t.Error("Expected placeholder for unnamed title")
	}
}
