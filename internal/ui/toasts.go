package ui

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/theme"
)

var toastGlyphs = map[string]string{
	"check-circle":         "✔",
	"exclamation-circle":   "✖",
	"exclamation-triangle": "⚠",
	"info-circle":          "ℹ",
}

type toastChangedMsg struct {
	change notify.Change
}

type toastsClosedMsg struct{}

func waitForToastChange(q *notify.Queue) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-q.Changes()
		if !ok {
			return toastsClosedMsg{}
		}
		return toastChangedMsg{change: change}
	}
}

func (m *Model) toastSubscription() subscription {
	return subscription{
		name: "toasts",
		handlers: map[reflect.Type]msgHandler{
			reflect.TypeOf(toastChangedMsg{}): m.handleToastChangedMsg,
			reflect.TypeOf(toastsClosedMsg{}): m.handleToastsClosedMsg,
		},
		init: func() tea.Cmd {
			if !m.watchToasts {
				return nil
			}
			return waitForToastChange(m.deps.Toasts)
		},
		teardown: func() {
			if m.deps.Toasts != nil {
				m.deps.Toasts.Close()
			}
		},
	}
}

// handleToastChangedMsg only re-arms the wait; the view reads the queue
// directly, so receiving the message is enough to trigger a repaint.
func (m *Model) handleToastChangedMsg(msg tea.Msg) tea.Cmd {
	if !m.watchToasts || m.deps.Toasts == nil {
		return nil
	}
	return waitForToastChange(m.deps.Toasts)
}

func (m *Model) handleToastsClosedMsg(tea.Msg) tea.Cmd {
	m.watchToasts = false
	return nil
}

func (m *Model) notify(message string, kind notify.Kind) {
	if m.deps.Toasts == nil {
		return
	}
	m.deps.Toasts.Enqueue(message, kind)
}

func (m *Model) dismissNewestToast() {
	if m.deps.Toasts == nil {
		return
	}
	if entry, ok := m.deps.Toasts.Newest(); ok {
		m.deps.Toasts.Dismiss(entry.ID)
	}
}

// toastLines renders the notification stack, oldest first, right-aligned.
func (m *Model) toastLines(width int) []string {
	if m.deps.Toasts == nil {
		return nil
	}
	entries := m.deps.Toasts.Entries()
	if len(entries) == 0 {
		return nil
	}
	maxText := max(width-6, 8)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		style := styles.Toast.Background(theme.ToastBackground(entry.Kind.String()))
		if entry.Fading {
			style = *styles.ToastFading
		}
		text := toastGlyphs[entry.Kind.Icon()] + " " + truncate.StringWithTail(entry.Message, uint(maxText), "…")
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(text)))
	}
	return lines
}
