package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rfgds/rfgds/pkg/generate"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestComponentBrowserNavigation(t *testing.T) {
	m := NewComponentListModel(generate.All())

	next, _ := m.Update(keyMsg("down"))
	m = next.(ComponentListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(ComponentListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor after up = %d, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("up"))
	m = next.(ComponentListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor should not go negative, got %d", m.Cursor)
	}
}

func TestComponentBrowserQuit(t *testing.T) {
	m := NewComponentListModel(generate.All())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestComponentBrowserView(t *testing.T) {
	m := NewComponentListModel(generate.All())
	view := m.View()

	first := generate.All()[0]
	if !strings.Contains(view, first.Type) {
		t.Errorf("view should mention the selected type %q", first.Type)
	}
	if !strings.Contains(view, "Ports") {
		t.Error("view should render the detail pane")
	}
}
