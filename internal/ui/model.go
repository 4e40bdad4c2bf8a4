package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/evsched/internal/api"
	"github.com/atomicstack/evsched/internal/event"
	"github.com/atomicstack/evsched/internal/form"
	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/search"
	"github.com/atomicstack/evsched/internal/suggest"
	"github.com/atomicstack/evsched/internal/theme"
	"github.com/atomicstack/evsched/internal/ui/command"
)

// Mode selects what the main area shows.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeDetail
	ModeConfirmDelete
	ModeForm
)

// reloadDelay is the pause between a successful delete and the refresh.
const reloadDelay = 1000 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// scheduleFunc delivers msg after d.
type scheduleFunc func(d time.Duration, msg tea.Msg) tea.Cmd

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Deps are the collaborators shared by every component of the console. They
// are built once by the caller and handed to NewModel.
type Deps struct {
	Client *api.Client
	Toasts *notify.Queue
	Forms  *form.Controller
}

// Options tunes layout and timing.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Debounce   time.Duration
	Context    context.Context
	Now        func() time.Time
}

// subscription is one component's slice of the update loop: the messages it
// handles, the commands it starts with and what it releases on Close.
type subscription struct {
	name     string
	handlers map[reflect.Type]msgHandler
	init     func() tea.Cmd
	teardown func()
}

// Model implements the Bubble Tea model for the event console.
type Model struct {
	deps Deps
	keys keyMap
	help help.Model
	bus  *command.Bus

	search        textinput.Model
	searchFocused bool
	dispatcher    *search.Dispatcher
	suggestions   *suggest.Renderer

	mode          Mode
	detail        *event.Event
	loadingDetail int
	deleting      int
	editor        *eventEditor

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	reloadGen   uint64
	exitURL     string
	schedule    scheduleFunc
	watchToasts bool
	cursorMode  cursor.Mode
	now         func() time.Time

	subscriptions []subscription
	handlers      map[reflect.Type]msgHandler
	closed        bool
}

// NewModel wires the console components together.
func NewModel(deps Deps, opts Options) *Model {
	if deps.Forms == nil {
		var n notify.Notifier
		if deps.Toasts != nil {
			n = deps.Toasts
		}
		deps.Forms = form.NewController(n)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		deps:        deps,
		keys:        defaultKeyMap(),
		help:        help.New(),
		bus:         command.New(opts.Context),
		dispatcher:  search.New(opts.Debounce),
		suggestions: suggest.NewRenderer(styles),
		showFooter:  opts.ShowFooter,
		schedule:    tick,
		watchToasts: deps.Toasts != nil,
		cursorMode:  cursor.CursorBlink,
		now:         now,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.search = newSearchInput()
	m.search.Focus()
	m.searchFocused = true
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	for _, sub := range m.subscriptions {
		if sub.init == nil {
			continue
		}
		if cmd := sub.init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, m.forwardToInputs(msg)
}

// Close tears down every component subscription in reverse order. It is safe
// to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for i := len(m.subscriptions) - 1; i >= 0; i-- {
		if td := m.subscriptions[i].teardown; td != nil {
			td()
		}
	}
	m.handlers = nil
}

// ExitURL is the page the user asked to open before quitting, if any.
func (m *Model) ExitURL() string {
	return m.exitURL
}

// Mode returns what the main area currently shows.
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) registerHandlers() {
	m.subscriptions = []subscription{
		m.layoutSubscription(),
		m.searchSubscription(),
		m.toastSubscription(),
		m.formSubscription(),
		m.actionSubscription(),
	}
	m.handlers = make(map[reflect.Type]msgHandler)
	for _, sub := range m.subscriptions {
		for t, h := range sub.handlers {
			m.handlers[t] = h
		}
	}
}

func (m *Model) layoutSubscription() subscription {
	return subscription{
		name: "layout",
		handlers: map[reflect.Type]msgHandler{
			reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
			reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		},
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// forwardToInputs hands unclaimed messages (cursor blinks and the like) to the
// text inputs.
func (m *Model) forwardToInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	if m.editor != nil {
		cmds = append(cmds, m.editor.update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.search.Width = max(m.contentWidth()-lenPrompt(), 10)
	m.help.Width = m.contentWidth()
	if m.editor != nil {
		m.editor.resize(m.contentWidth())
	}
	return nil
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// setCursorMode switches every text input to mode.
func (m *Model) setCursorMode(mode cursor.Mode) {
	m.cursorMode = mode
	m.search.Cursor.SetMode(mode)
	if m.editor != nil {
		m.editor.setCursorMode(mode)
	}
}
