package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModelStartsInBrowseModeWithSearchFocused(t *testing.T) {
	m := NewModel(Deps{}, Options{})
	if m.Mode() != ModeBrowse || !m.searchFocused {
		t.Fatalf("expected browse mode with search focused")
	}
	if !strings.Contains(m.View(), browseHint) {
		t.Fatalf("expected browse hint in view, got\n%s", m.View())
	}
}

func TestEverySubscriptionHandlerIsRegistered(t *testing.T) {
	m := NewModel(Deps{}, Options{})
	for _, sub := range m.subscriptions {
		for typ := range sub.handlers {
			if _, ok := m.handlers[typ]; !ok {
				t.Fatalf("handler for %v from %s not registered", typ, sub.name)
			}
		}
	}
	for _, msg := range []tea.Msg{tea.KeyMsg{}, tea.WindowSizeMsg{}, debounceFiredMsg{}, searchResultMsg{}, toastChangedMsg{}, saveResultMsg{}, reloadMsg{}} {
		if m.handlerFor(msg) == nil {
			t.Fatalf("expected a handler for %T", msg)
		}
	}
}

func TestCloseIsIdempotentAndStopsUpdates(t *testing.T) {
	m := NewModel(Deps{}, Options{})
	m.Close()
	m.Close()
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN}); cmd != nil {
		t.Fatalf("expected no commands after close")
	}
	if m.Mode() != ModeBrowse {
		t.Fatalf("expected closed model to ignore input")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(Deps{}, Options{Width: 60})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if m.width != 60 || m.height != 30 {
		t.Fatalf("expected fixed width and dynamic height, got %dx%d", m.width, m.height)
	}
}

func TestViewFitsHeightAndWidth(t *testing.T) {
	c := newConsole(t)
	c.Send(tea.WindowSizeMsg{Width: 100, Height: 40})
	c.searchTeam(t)
	lines := strings.Split(c.View(), "\n")
	if len(lines) > 40 {
		t.Fatalf("expected at most 40 lines, got %d", len(lines))
	}
}

func TestQuitShortcut(t *testing.T) {
	c := newConsole(t)
	c.Key(tea.KeyCtrlC)
	if !c.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestFooterShowsModeHelp(t *testing.T) {
	m := NewModel(Deps{}, Options{Width: 120, ShowFooter: true})
	if !strings.Contains(m.View(), "new event") {
		t.Fatalf("expected footer help in view, got\n%s", m.View())
	}
}
