package ui

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/form"
	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/notify"
)

const (
	enhanceLabel         = "Enhance description"
	enhanceFailedMessage = "Failed to enhance description"
	enhancedMessage      = "Description enhanced successfully!"
	missingTitleMessage  = "Please enter an event title first"
	labelWidth           = 12
)

type saveResultMsg struct {
	formID string
	id     int
	title  string
	err    error
}

type enhanceResultMsg struct {
	formID      string
	description string
	err         error
}

// eventEditor is the on-screen editor of one event form. Only the focused
// field has a live input; the others render from their stored values.
type eventEditor struct {
	form    *form.Form
	sub     *form.Submission
	enhance form.Button
	line    textinput.Model
	area    textarea.Model
	focused bool
}

func newEventEditor(sub *form.Submission, width int, mode cursor.Mode) *eventEditor {
	e := &eventEditor{
		form:    sub.Form(),
		sub:     sub,
		enhance: form.Button{Label: enhanceLabel},
		line:    textinput.New(),
		area:    textarea.New(),
	}
	e.line.Prompt = ""
	e.area.ShowLineNumbers = false
	e.area.SetHeight(4)
	e.setCursorMode(mode)
	e.resize(width)
	e.load()
	return e
}

func (e *eventEditor) setCursorMode(mode cursor.Mode) {
	e.line.Cursor.SetMode(mode)
	e.area.Cursor.SetMode(mode)
}

func (e *eventEditor) resize(width int) {
	inner := max(width-labelWidth-12, 10)
	e.line.Width = inner
	e.area.SetWidth(inner)
}

// load copies the focused field into the live input.
func (e *eventEditor) load() tea.Cmd {
	field := e.form.Focused()
	if field == nil {
		return nil
	}
	e.line.Blur()
	e.area.Blur()
	if field.Multiline {
		e.area.CharLimit = field.MaxLength
		e.area.SetValue(field.Value)
		if e.focused {
			return e.area.Focus()
		}
		return nil
	}
	e.line.CharLimit = field.MaxLength
	e.line.Placeholder = strings.Join(field.Choices, " | ")
	e.line.SetValue(field.Value)
	e.line.CursorEnd()
	if e.focused {
		return e.line.Focus()
	}
	return nil
}

// commit writes the live input back to the focused field.
func (e *eventEditor) commit() {
	field := e.form.Focused()
	if field == nil {
		return
	}
	if field.Multiline {
		field.Value = e.area.Value()
		return
	}
	field.Value = e.line.Value()
}

func (e *eventEditor) focus() tea.Cmd {
	e.focused = true
	return e.load()
}

func (e *eventEditor) blur() {
	e.commit()
	e.focused = false
	e.line.Blur()
	e.area.Blur()
}

// move shifts focus by delta, completing a choice field on the way out.
func (e *eventEditor) move(delta int) tea.Cmd {
	e.commit()
	if field := e.form.Focused(); field != nil && len(field.Choices) > 0 {
		field.Complete()
	}
	e.form.MoveFocus(delta)
	return e.load()
}

func (e *eventEditor) update(msg tea.Msg) tea.Cmd {
	if !e.focused {
		return nil
	}
	field := e.form.Focused()
	if field == nil {
		return nil
	}
	var cmd tea.Cmd
	if field.Multiline {
		e.area, cmd = e.area.Update(msg)
	} else {
		e.line, cmd = e.line.Update(msg)
	}
	e.commit()
	return cmd
}

func (e *eventEditor) view() []string {
	lines := []string{styles.DetailTitle.Render(e.form.Title), ""}
	for i, field := range e.form.Fields {
		label := styles.Label.Render(fmt.Sprintf("%-*s", labelWidth, field.Label))
		if i == e.form.Focus && e.focused {
			label = styles.FocusedLabel.Render(fmt.Sprintf("%-*s", labelWidth, field.Label))
		}
		value := field.Value
		switch {
		case i == e.form.Focus && e.focused && field.Multiline:
			value = e.area.View()
		case i == e.form.Focus && e.focused:
			value = e.line.View()
		case value == "":
			value = styles.Muted.Render("-")
		}
		row := label + value
		if counter := counterView(field); counter != "" {
			row += "  " + counter
		}
		lines = append(lines, strings.Split(row, "\n")...)
	}
	lines = append(lines, "", buttonView(e.form.Submit)+" "+buttonView(e.enhance))
	return lines
}

func counterView(field *form.Field) string {
	text, level, ok := field.Counter()
	if !ok {
		return ""
	}
	switch level {
	case form.CounterDanger:
		return styles.CounterDanger.Render(text)
	case form.CounterWarning:
		return styles.CounterWarning.Render(text)
	}
	return styles.Counter.Render(text)
}

func buttonView(b form.Button) string {
	if b.Disabled {
		return styles.DisabledButton.Render(b.Label)
	}
	return styles.Button.Render(b.Label)
}

func (m *Model) formSubscription() subscription {
	return subscription{
		name: "form",
		handlers: map[reflect.Type]msgHandler{
			reflect.TypeOf(saveResultMsg{}):    m.handleSaveResultMsg,
			reflect.TypeOf(enhanceResultMsg{}): m.handleEnhanceResultMsg,
		},
		teardown: func() {
			m.closeForm()
		},
	}
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	e := m.editor
	switch {
	case key.Matches(msg, m.keys.Submit):
		events.Key.Shortcut("submit")
		return m.submitForm()
	case key.Matches(msg, m.keys.Enhance):
		events.Key.Shortcut("enhance")
		return m.enhanceDescription()
	case key.Matches(msg, m.keys.NextField):
		return e.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return e.move(-1)
	case key.Matches(msg, m.keys.Enter):
		if field := e.form.Focused(); field != nil && !field.Multiline {
			return e.move(1)
		}
	}
	return e.update(msg)
}

// openEventForm shows the add form, or the edit form when ev is set.
func (m *Model) openEventForm(ev *event.Event) tea.Cmd {
	id := 0
	if ev != nil {
		id = ev.ID
	}
	if m.editor != nil && m.editor.form.ID == form.EventFormID(id) {
		m.mode = ModeForm
		m.blurSearch()
		return m.editor.focus()
	}
	m.closeForm()
	sub := m.deps.Forms.Attach(form.NewEventForm(ev, m.now()))
	m.editor = newEventEditor(sub, m.contentWidth(), m.cursorMode)
	m.mode = ModeForm
	m.clearSuggestions(events.SearchReasonEscape)
	m.blurSearch()
	return m.editor.focus()
}

// closeForm drops the editor. A pending submission stays attached so its
// result can still settle it.
func (m *Model) closeForm() {
	if m.editor == nil {
		return
	}
	m.editor.blur()
	m.deps.Forms.Detach(m.editor.form.ID)
	m.editor = nil
	if m.mode == ModeForm {
		m.mode = ModeBrowse
		if m.detail != nil {
			m.mode = ModeDetail
		}
	}
}

func (m *Model) submitForm() tea.Cmd {
	e := m.editor
	e.commit()
	outcome, err := e.sub.Attempt()
	switch outcome {
	case form.OutcomeInvalid:
		events.Action.Error(err)
		return e.load()
	case form.OutcomeSuppressed:
		return nil
	}
	f := e.form
	formID := f.ID
	id := form.EventID(formID)
	title := strings.TrimSpace(f.Field("title").Value)
	values := f.Values()
	cmd := m.clientRequest("save:"+formID, "save event", func(c clientRun) tea.Msg {
		err := c.client.SaveEvent(c.ctx, id, values)
		return saveResultMsg{formID: formID, id: id, title: title, err: err}
	})
	if cmd == nil {
		e.sub.Settle(errors.New("no API client configured"))
	}
	return cmd
}

func (m *Model) handleSaveResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(saveResultMsg)
	if !ok {
		return nil
	}
	sub, attached := m.deps.Forms.Submission(result.formID)
	if attached {
		sub.Settle(result.err)
	}
	if result.err != nil {
		events.Action.Error(result.err)
		return nil
	}
	verb := "created"
	if result.id > 0 {
		verb = "updated"
	}
	info := fmt.Sprintf(`Event "%s" %s successfully!`, result.title, verb)
	m.notify(info, notify.KindSuccess)
	events.Action.Success(info)
	if attached {
		sub.Restore()
	}
	if m.editor != nil && m.editor.form.ID == result.formID {
		m.closeForm()
	} else {
		m.deps.Forms.Detach(result.formID)
	}
	cmds := []tea.Cmd{m.focusSearch()}
	if result.id > 0 && m.detail != nil && m.detail.ID == result.id {
		cmds = append(cmds, m.loadDetail(result.id))
	}
	return tea.Batch(cmds...)
}

// enhanceDescription asks the server to write the description from the title
// and location.
func (m *Model) enhanceDescription() tea.Cmd {
	e := m.editor
	if e.enhance.Disabled {
		return nil
	}
	e.commit()
	title := strings.TrimSpace(e.form.Field("title").Value)
	if title == "" {
		m.notify(missingTitleMessage, notify.KindWarning)
		e.form.FocusField("title")
		return e.load()
	}
	location := strings.TrimSpace(e.form.Field("location").Value)
	formID := e.form.ID
	cmd := m.clientRequest("enhance:"+formID, "enhance description", func(c clientRun) tea.Msg {
		desc, err := c.client.EnhanceDescription(c.ctx, title, location)
		return enhanceResultMsg{formID: formID, description: desc, err: err}
	})
	if cmd != nil {
		e.enhance.SetLoading(true)
	}
	return cmd
}

func (m *Model) handleEnhanceResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(enhanceResultMsg)
	if !ok {
		return nil
	}
	e := m.editor
	if e == nil || e.form.ID != result.formID {
		return nil
	}
	e.enhance.SetLoading(false)
	if result.err != nil {
		events.Action.Error(result.err)
		m.notify(enhanceFailedMessage, notify.KindError)
		return nil
	}
	e.commit()
	e.form.Field("description").Value = result.description
	m.notify(enhancedMessage, notify.KindSuccess)
	events.Action.Success(enhancedMessage)
	return e.load()
}
