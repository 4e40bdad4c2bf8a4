package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/logging/events"
)

// handleKeyMsg routes key presses. Global shortcuts win, then the delete
// prompt, then the focused search field, then the active main-area mode.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		events.App.Stop("interrupt")
		return tea.Quit
	}
	if m.mode == ModeConfirmDelete {
		return m.handleConfirmKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.FocusSearch):
		events.Key.Shortcut("focus-search")
		return m.focusSearch()
	case key.Matches(keyMsg, m.keys.NewEvent):
		events.Key.Shortcut("new-event")
		return m.openEventForm(nil)
	case key.Matches(keyMsg, m.keys.Dismiss):
		events.Key.Shortcut("dismiss-toast")
		m.dismissNewestToast()
		return nil
	case key.Matches(keyMsg, m.keys.Escape):
		events.Key.Shortcut("escape")
		return m.escape()
	}
	if m.searchFocused {
		if handled, cmd := m.handleSearchKey(keyMsg); handled {
			return cmd
		}
	}
	if m.mode == ModeDetail {
		switch {
		case key.Matches(keyMsg, m.keys.Delete):
			events.Key.Shortcut("delete")
			return m.confirmDelete()
		case key.Matches(keyMsg, m.keys.Edit):
			events.Key.Shortcut("edit")
			return m.openEventForm(m.detail)
		}
	}
	if m.searchFocused {
		return m.updateSearchInput(keyMsg)
	}
	if m.mode == ModeForm && m.editor != nil {
		return m.handleFormKey(keyMsg)
	}
	return nil
}

// escape hides the suggestion panel and closes whatever overlay is open.
func (m *Model) escape() tea.Cmd {
	if m.suggestions.Visible() {
		m.suggestions.Clear()
		events.Search.Clear(events.SearchReasonEscape)
	}
	switch m.mode {
	case ModeForm:
		m.closeForm()
		return m.focusSearch()
	case ModeDetail:
		m.detail = nil
		m.mode = ModeBrowse
	}
	return nil
}

func (m *Model) focusSearch() tea.Cmd {
	if m.editor != nil {
		m.editor.blur()
	}
	m.searchFocused = true
	events.Search.Focus()
	return m.search.Focus()
}

func (m *Model) blurSearch() {
	m.searchFocused = false
	m.search.Blur()
}
