package ui

import (
	"fmt"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/search"
)

const (
	detailFailedMessage = "Failed to load event details"
	deleteFailedMessage = "Failed to delete event"
)

// detailLoadedMsg mirrors the async detail loader response.
type detailLoadedMsg struct {
	id    int
	event *event.Event
	err   error
}

type deleteResultMsg struct {
	id    int
	title string
	err   error
}

type reloadMsg struct {
	gen uint64
}

func (m *Model) actionSubscription() subscription {
	return subscription{
		name: "actions",
		handlers: map[reflect.Type]msgHandler{
			reflect.TypeOf(detailLoadedMsg{}): m.handleDetailLoadedMsg,
			reflect.TypeOf(deleteResultMsg{}): m.handleDeleteResultMsg,
			reflect.TypeOf(reloadMsg{}):       m.handleReloadMsg,
		},
		teardown: func() {
			m.loadingDetail = 0
			m.reloadGen++
		},
	}
}

func (m *Model) loadDetail(id int) tea.Cmd {
	m.loadingDetail = id
	return m.clientRequest(fmt.Sprintf("detail:%d", id), "load event", func(c clientRun) tea.Msg {
		ev, err := c.client.GetEvent(c.ctx, id)
		return detailLoadedMsg{id: id, event: ev, err: err}
	})
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok || loaded.id != m.loadingDetail {
		return nil
	}
	m.loadingDetail = 0
	if loaded.err != nil {
		events.Action.Error(loaded.err)
		m.notify(detailFailedMessage, notify.KindError)
		return nil
	}
	m.detail = loaded.event
	if m.mode == ModeBrowse {
		m.mode = ModeDetail
	}
	return nil
}

func (m *Model) deleteEvent(ev *event.Event) tea.Cmd {
	if ev == nil {
		return nil
	}
	id, title := ev.ID, ev.Title
	return m.clientRequest(fmt.Sprintf("delete:%d", id), "delete event", func(c clientRun) tea.Msg {
		err := c.client.DeleteEvent(c.ctx, id)
		return deleteResultMsg{id: id, title: title, err: err}
	})
}

func (m *Model) handleDeleteResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(deleteResultMsg)
	if !ok {
		return nil
	}
	if m.deleting == result.id {
		m.deleting = 0
	}
	if result.err != nil {
		events.Action.Error(result.err)
		m.notify(deleteFailedMessage, notify.KindError)
		return nil
	}
	info := fmt.Sprintf(`Event "%s" deleted successfully`, result.title)
	m.notify(info, notify.KindSuccess)
	events.Action.Success(info)
	m.reloadGen++
	return m.schedule(reloadDelay, reloadMsg{gen: m.reloadGen})
}

// handleReloadMsg drops the detail view and re-runs the current search so
// deleted events disappear from the suggestions.
func (m *Model) handleReloadMsg(msg tea.Msg) tea.Cmd {
	reload, ok := msg.(reloadMsg)
	if !ok || reload.gen != m.reloadGen {
		return nil
	}
	m.detail = nil
	if m.mode == ModeDetail || m.mode == ModeConfirmDelete {
		m.mode = ModeBrowse
	}
	effect := m.dispatcher.OnInput(m.search.Value())
	if effect.Action != search.ActionSchedule {
		m.clearSuggestions(events.SearchReasonShort)
		return nil
	}
	req, ok := m.dispatcher.Fire(effect.Gen)
	if !ok {
		return nil
	}
	return m.quickSearchCmd(req)
}
