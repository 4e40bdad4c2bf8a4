package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/form"
	"github.com/atomicstack/evsched/internal/notify"
)

func openNewForm(t *testing.T, c *console) *eventEditor {
	t.Helper()
	c.Key(tea.KeyCtrlN)
	m := c.Model()
	if m.Mode() != ModeForm || m.editor == nil {
		t.Fatalf("expected the event form to open, mode=%v", m.Mode())
	}
	if m.searchFocused {
		t.Fatalf("expected search to lose focus while the form is open")
	}
	return m.editor
}

func TestNewEventFormDefaultsDateToNextHour(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	if got := e.form.Field("date").Value; got != "2024-03-04T10:00" {
		t.Fatalf("unexpected default date %q", got)
	}
	if !strings.Contains(c.View(), "Create event") {
		t.Fatalf("expected submit button in view, got\n%s", c.View())
	}
}

func TestSubmittingEmptyRequiredFieldNeverCallsServer(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	e.form.MoveFocus(2)
	e.load()
	c.Key(tea.KeyCtrlS)

	if got := c.srv.snapshot(&c.srv.saves); len(got) != 0 {
		t.Fatalf("expected no save request, got %v", got)
	}
	if focused := e.form.Focused().Name; focused != "title" {
		t.Fatalf("expected title focused, got %s", focused)
	}
	entries := c.toasts.Entries()
	if len(entries) != 1 || entries[0].Message != form.InvalidMessage || entries[0].Kind != notify.KindError {
		t.Fatalf("expected one validation error toast, got %#v", entries)
	}
	if sub, _ := c.Model().deps.Forms.Submission(e.form.ID); sub.Phase() != form.PhaseIdle {
		t.Fatalf("expected idle phase after rejection, got %v", sub.Phase())
	}
}

func TestSecondSubmitWhilePendingIsSuppressed(t *testing.T) {
	c := newConsole(t)
	openNewForm(t, c)
	c.Type("Standup")
	m := c.Model()

	first := m.submitForm()
	if first == nil {
		t.Fatalf("expected a save command for a valid form")
	}
	if !m.editor.form.Submit.Disabled || m.editor.form.Submit.Label != form.LoadingLabel {
		t.Fatalf("expected the submit button to show loading, got %#v", m.editor.form.Submit)
	}
	if second := m.submitForm(); second != nil {
		t.Fatalf("expected the second submit to be suppressed")
	}
	c.run(first)

	saves := c.srv.snapshot(&c.srv.saves)
	if len(saves) != 1 || !strings.HasPrefix(saves[0], "/events/add?") || !strings.Contains(saves[0], "title=Standup") {
		t.Fatalf("expected exactly one add request, got %v", saves)
	}
	if m.Mode() != ModeBrowse || m.editor != nil {
		t.Fatalf("expected the form to close after saving, mode=%v", m.Mode())
	}
	if msgs := c.messages(); len(msgs) != 1 || msgs[0] != `Event "Standup" created successfully!` {
		t.Fatalf("unexpected notifications %v", msgs)
	}
}

func TestEditFormUpdatesAndReloadsDetail(t *testing.T) {
	c := newConsole(t)
	c.openDetail(t, 7)
	c.Key(tea.KeyCtrlE)
	m := c.Model()
	if m.Mode() != ModeForm || m.editor.form.ID != form.EventFormID(7) {
		t.Fatalf("expected edit form for event 7")
	}
	if got := m.editor.form.Field("title").Value; got != "Team Sync" {
		t.Fatalf("expected prefilled title, got %q", got)
	}
	c.Key(tea.KeyCtrlS)
	saves := c.srv.snapshot(&c.srv.saves)
	if len(saves) != 1 || !strings.HasPrefix(saves[0], "/events/edit/7?") {
		t.Fatalf("expected one edit request, got %v", saves)
	}
	if m.Mode() != ModeDetail || m.detail == nil || m.detail.ID != 7 {
		t.Fatalf("expected to return to the detail view, mode=%v", m.Mode())
	}
	if msgs := c.messages(); len(msgs) != 1 || msgs[0] != `Event "Team Sync" updated successfully!` {
		t.Fatalf("unexpected notifications %v", msgs)
	}
}

func TestStatusFieldCompletesOnLeave(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	for e.form.Focused().Name != "status" {
		c.Key(tea.KeyTab)
	}
	c.Key(tea.KeyCtrlU)
	c.Type("att")
	c.Key(tea.KeyTab)
	if got := e.form.Field("status").Value; got != "attending" {
		t.Fatalf("expected status completed to attending, got %q", got)
	}
	if e.form.Focused().Name != "description" {
		t.Fatalf("expected focus on description, got %s", e.form.Focused().Name)
	}
}

func TestEnhanceWithoutTitleWarnsAndFocusesTitle(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	c.Key(tea.KeyTab)
	c.Key(tea.KeyCtrlG)

	if got := c.srv.snapshot(&c.srv.enhances); len(got) != 0 {
		t.Fatalf("expected no enhance request, got %v", got)
	}
	entries := c.toasts.Entries()
	if len(entries) != 1 || entries[0].Message != missingTitleMessage || entries[0].Kind != notify.KindWarning {
		t.Fatalf("expected one warning, got %#v", entries)
	}
	if e.form.Focused().Name != "title" {
		t.Fatalf("expected title focused, got %s", e.form.Focused().Name)
	}
}

func TestEnhanceFillsDescription(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	c.Type("Team Sync")
	c.Key(tea.KeyTab)
	c.Key(tea.KeyTab)
	c.Type("HQ")
	c.Key(tea.KeyCtrlG)

	if got := e.form.Field("description").Value; got != "Event: Team Sync at HQ" {
		t.Fatalf("unexpected description %q", got)
	}
	if msgs := c.messages(); len(msgs) != 1 || msgs[0] != enhancedMessage {
		t.Fatalf("unexpected notifications %v", msgs)
	}
	if e.enhance.Disabled || e.enhance.Label != enhanceLabel {
		t.Fatalf("expected enhance button restored, got %#v", e.enhance)
	}
}

func TestEnhanceFailureSurfacesError(t *testing.T) {
	c := newConsole(t)
	e := openNewForm(t, c)
	c.Type("broken")
	c.Key(tea.KeyCtrlG)

	msgs := c.messages()
	if len(msgs) != 2 || msgs[1] != enhanceFailedMessage {
		t.Fatalf("expected generic and enhance failure toasts, got %v", msgs)
	}
	if e.enhance.Disabled || e.enhance.Loading() {
		t.Fatalf("expected enhance button restored after failure")
	}
	if got := e.form.Field("description").Value; got != "" {
		t.Fatalf("expected description untouched, got %q", got)
	}
}

func TestEscapeClosesFormAndRefocusesSearch(t *testing.T) {
	c := newConsole(t)
	openNewForm(t, c)
	c.Key(tea.KeyEsc)
	m := c.Model()
	if m.Mode() != ModeBrowse || m.editor != nil {
		t.Fatalf("expected form closed, mode=%v", m.Mode())
	}
	if !m.searchFocused {
		t.Fatalf("expected search focused after closing the form")
	}
}
