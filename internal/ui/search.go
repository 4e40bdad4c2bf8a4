package ui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/evsched/internal/api"
	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/logging"
	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/search"
	"github.com/atomicstack/evsched/internal/suggest"
	"github.com/atomicstack/evsched/internal/ui/command"
)

const searchPrompt = "Search: "

type debounceFiredMsg struct {
	gen uint64
}

type searchResultMsg struct {
	seq     uint64
	query   string
	results []event.Suggestion
	err     error
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = searchPrompt
	ti.Placeholder = "Search events..."
	ti.CharLimit = 200
	ti.PromptStyle = *styles.FilterPrompt
	ti.TextStyle = *styles.Filter
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	return ti
}

func lenPrompt() int {
	return lipgloss.Width(searchPrompt)
}

func (m *Model) searchSubscription() subscription {
	return subscription{
		name: "search",
		handlers: map[reflect.Type]msgHandler{
			reflect.TypeOf(debounceFiredMsg{}): m.handleDebounceFiredMsg,
			reflect.TypeOf(searchResultMsg{}):  m.handleSearchResultMsg,
			reflect.TypeOf(tea.MouseMsg{}):     m.handleMouseMsg,
		},
		teardown: func() {
			m.dispatcher.Clear()
			m.suggestions.Clear()
		},
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	panel := m.suggestions.Visible()
	switch {
	case panel && key.Matches(msg, m.keys.Up):
		m.suggestions.MoveCursor(-1)
		return true, nil
	case panel && key.Matches(msg, m.keys.Down):
		m.suggestions.MoveCursor(1)
		return true, nil
	case panel && key.Matches(msg, m.keys.Home):
		m.suggestions.CursorHome()
		return true, nil
	case panel && key.Matches(msg, m.keys.End):
		m.suggestions.CursorEnd()
		return true, nil
	case key.Matches(msg, m.keys.Enter):
		return true, m.selectSuggestion()
	case m.mode == ModeForm && m.editor != nil && key.Matches(msg, m.keys.NextField):
		m.blurSearch()
		return true, m.editor.focus()
	}
	return false, nil
}

// updateSearchInput feeds a key to the search field and restarts the debounce
// when the text changed.
func (m *Model) updateSearchInput(msg tea.KeyMsg) tea.Cmd {
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.onSearchInput(m.search.Value()))
}

func (m *Model) onSearchInput(text string) tea.Cmd {
	effect := m.dispatcher.OnInput(text)
	if effect.Action == search.ActionClear {
		m.clearSuggestions(events.SearchReasonShort)
		return nil
	}
	return m.schedule(effect.Delay, debounceFiredMsg{gen: effect.Gen})
}

func (m *Model) clearSuggestions(reason events.SearchReason) {
	if !m.suggestions.Visible() {
		return
	}
	m.suggestions.Clear()
	events.Search.Clear(reason)
}

func (m *Model) handleDebounceFiredMsg(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(debounceFiredMsg)
	if !ok {
		return nil
	}
	req, ok := m.dispatcher.Fire(fired.gen)
	if !ok {
		return nil
	}
	return m.quickSearchCmd(req)
}

func (m *Model) quickSearchCmd(req search.Request) tea.Cmd {
	return m.clientRequest(fmt.Sprintf("search:%d", req.Seq), "quick search", func(c clientRun) tea.Msg {
		results, err := c.client.QuickSearch(c.ctx, req.Query)
		return searchResultMsg{seq: req.Seq, query: req.Query, results: results, err: err}
	})
}

func (m *Model) handleSearchResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(searchResultMsg)
	if !ok {
		return nil
	}
	if !m.dispatcher.Accept(result.seq) {
		return nil
	}
	if result.err != nil {
		logging.Error(fmt.Errorf("quick search %q: %w", result.query, result.err))
		m.clearSuggestions(events.SearchReasonFailed)
		return nil
	}
	if len(result.results) == 0 {
		m.clearSuggestions(events.SearchReasonEmpty)
		return nil
	}
	m.suggestions.Render(result.results, result.query)
	events.Search.Render(result.query, result.seq, len(result.results))
	return nil
}

// selectSuggestion acts on the highlighted row, or submits the query to the
// full search page when no panel is shown.
func (m *Model) selectSuggestion() tea.Cmd {
	if m.suggestions.Visible() {
		sel := m.suggestions.Selected()
		switch sel.Kind {
		case suggest.SelectEvent:
			m.suggestions.Clear()
			return m.loadDetail(sel.Suggestion.ID)
		case suggest.SelectViewAll:
			return m.navigateToSearch(sel.Query)
		}
	}
	query := strings.TrimSpace(m.search.Value())
	if utf8.RuneCountInString(query) < search.MinQueryLength {
		return nil
	}
	return m.navigateToSearch(query)
}

func (m *Model) navigateToSearch(query string) tea.Cmd {
	if m.deps.Client == nil {
		return nil
	}
	return m.navigate(m.deps.Client.SearchPageURL(query))
}

// navigate records the page to open and ends the program; the caller prints
// the URL once the terminal is restored.
func (m *Model) navigate(url string) tea.Cmd {
	m.exitURL = url
	events.App.Navigate(url)
	return tea.Quit
}

// searchContainerHeight is the number of rows taken by the search field and
// its suggestion panel at the top of the view.
func (m *Model) searchContainerHeight() int {
	return 1 + m.suggestions.Height()
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if mouse.Action != tea.MouseActionPress || mouse.Button != tea.MouseButtonLeft {
		return nil
	}
	if mouse.Y < m.searchContainerHeight() {
		return nil
	}
	m.clearSuggestions(events.SearchReasonOutside)
	return nil
}

// clientRun carries what an API action needs off the update loop.
type clientRun struct {
	ctx    context.Context
	client *api.Client
}

// clientRequest runs fn through the command bus. It does nothing when the
// console has no API client.
func (m *Model) clientRequest(id, label string, fn func(clientRun) tea.Msg) tea.Cmd {
	client := m.deps.Client
	if client == nil {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    id,
		Label: label,
		Run: func(ctx context.Context) tea.Msg {
			return fn(clientRun{ctx: ctx, client: client})
		},
	})
}
