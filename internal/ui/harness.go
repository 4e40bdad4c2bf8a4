package ui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests. Timers
// started by the model are held on a virtual clock that only moves on Advance,
// and commands run synchronously.
type Harness struct {
	model  *Model
	now    time.Duration
	timers []harnessTimer
	nextID int
	quit   bool
}

type harnessTimer struct {
	at  time.Duration
	id  int
	msg tea.Msg
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model}
	if model != nil {
		model.schedule = h.schedule
		model.watchToasts = false
		model.setCursorMode(cursor.CursorStatic)
	}
	return h
}

func (h *Harness) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	h.nextID++
	h.timers = append(h.timers, harnessTimer{at: h.now + d, id: h.nextID, msg: msg})
	return nil
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.run(cmd)
}

func (h *Harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.Send(msg)
	}
}

// Type sends each rune of text as a key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Key sends a special key.
func (h *Harness) Key(t tea.KeyType) {
	h.Send(tea.KeyMsg{Type: t})
}

// Advance moves the virtual clock forward, delivering due timers in order.
func (h *Harness) Advance(d time.Duration) {
	target := h.now + d
	for {
		sort.SliceStable(h.timers, func(i, j int) bool {
			if h.timers[i].at != h.timers[j].at {
				return h.timers[i].at < h.timers[j].at
			}
			return h.timers[i].id < h.timers[j].id
		})
		if len(h.timers) == 0 || h.timers[0].at > target {
			break
		}
		next := h.timers[0]
		h.timers = h.timers[1:]
		h.now = next.at
		h.Send(next.msg)
	}
	h.now = target
}

// PendingTimers reports how many timers have not fired yet.
func (h *Harness) PendingTimers() int {
	return len(h.timers)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
