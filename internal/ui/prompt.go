package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/logging/events"
)

// confirmDelete asks before deleting the event on screen.
func (m *Model) confirmDelete() tea.Cmd {
	if m.detail == nil || m.deleting == m.detail.ID {
		return nil
	}
	m.mode = ModeConfirmDelete
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeDetail
		events.Key.Shortcut("confirm-delete")
		if m.detail == nil {
			return nil
		}
		m.deleting = m.detail.ID
		return m.deleteEvent(m.detail)
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeDetail
		if key.Matches(msg, m.keys.Escape) {
			m.clearSuggestions(events.SearchReasonEscape)
		}
		events.Key.Shortcut("cancel-delete")
	}
	return nil
}

func (m *Model) confirmPrompt() string {
	if m.detail == nil {
		return ""
	}
	return fmt.Sprintf(`Delete "%s"? This cannot be undone. (y/n)`, m.detail.Title)
}
