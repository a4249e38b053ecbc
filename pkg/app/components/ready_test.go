package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/kerbaras/mapleseed/pkg/services"
)

var required = []services.Component{services.ComponentLibrary, services.ComponentGraphicPacks}

func TestReadyViewLoading(t *testing.T) {
	view := NewReadyView(required, 40)

	if view.Init() == nil {
		t.Error("Expected spinner tick command")
	}

	view.SetLoaded([]services.Component{services.ComponentLibrary})
	out := view.View()

	if !strings.Contains(out, "Loading databases (1/2)") {
		t.Errorf("Expected loading count, got: %s", out)
	}
	if !strings.Contains(out, "library: ready") {
		t.Error("Expected library to be ready")
	}
	if !strings.Contains(out, "graphicpacks: waiting") {
		t.Error("Expected graphic packs to be waiting")
	}
	if view.Ready() {
		t.Error("Expected view not to be ready")
	}
}

func TestReadyViewIgnoresUnknownComponents(t *testing.T) {
	view := NewReadyView(required, 40)

	view.SetLoaded([]services.Component{"other"})

	if !strings.Contains(view.View(), "(0/2)") {
		t.Error("Expected unknown components not to count")
	}
}

func TestReadyViewReady(t *testing.T) {
	view := NewReadyView(required, 40)

	view.MarkReady()
	out := view.View()

	if !view.Ready() {
		t.Error("Expected view to be ready")
	}
	if strings.Contains(out, "Loading") {
		t.Error("Expected no loading line once ready")
	}
	if strings.Count(out, ": ready") != 2 {
		t.Errorf("Expected both components ready, got: %s", out)
	}
	if cmd := view.Update(nil); cmd != nil {
		t.Error("Expected spinner to stop once ready")
	}
}

func TestReadyViewFailed(t *testing.T) {
	view := NewReadyView(required, 40)

	view.Fail(errors.New("components not ready after 30s"))
	out := view.View()

	if view.Err() == nil {
		t.Error("Expected error to be recorded")
	}
	if !strings.Contains(out, "Databases failed to load") {
		t.Error("Expected failure header")
	}
	if !strings.Contains(out, "not ready after 30s") {
		t.Error("Expected error details")
	}
}
