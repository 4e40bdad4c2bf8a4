// Package search turns a stream of input edits into at most one live
// quick-search request per quiet period and decides which responses are still
// current.
//
// The dispatcher never sleeps or spawns goroutines. OnInput hands back the
// timer the caller should start, Fire is called when that timer elapses, and
// Accept is consulted when a response arrives. Timers and responses that have
// been superseded are recognised by their generation and sequence numbers, so
// nothing ever needs to be cancelled.
package search

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atomicstack/evsched/internal/logging/events"
)

const (
	DefaultDelay   = 300 * time.Millisecond
	MinQueryLength = 2
)

// Action tells the caller what to do after an input change.
type Action int

const (
	// ActionClear means the suggestion panel must be removed.
	ActionClear Action = iota
	// ActionSchedule means a debounce timer must be started.
	ActionSchedule
)

// Effect is the outcome of OnInput.
type Effect struct {
	Action Action
	Gen    uint64
	Delay  time.Duration
}

// Request is a quick search that should be issued now.
type Request struct {
	Seq   uint64
	Query string
}

// Session is the live query state for one search field.
type Session struct {
	RawText string
	Seq     uint64
	Gen     uint64
	// Armed is true while a debounce timer for Gen is outstanding.
	Armed bool
	// Live is false once the input changed or the session was cleared after its
	// last request.
	Live bool
}

// Dispatcher owns the query session of a single search field.
type Dispatcher struct {
	delay   time.Duration
	session Session
}

// New constructs a dispatcher. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Dispatcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Dispatcher{delay: delay}
}

// Delay returns the debounce window.
func (d *Dispatcher) Delay() time.Duration {
	return d.delay
}

// Session returns a copy of the current session state.
func (d *Dispatcher) Session() Session {
	return d.session
}

// OnInput records the latest field text. Any previously started timer and any
// response still in flight are invalidated whatever the outcome.
func (d *Dispatcher) OnInput(text string) Effect {
	d.session.RawText = text
	d.session.Gen++
	d.session.Live = false
	events.Search.Input(text, d.session.Gen)
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinQueryLength {
		d.Clear()
		return Effect{Action: ActionClear}
	}
	d.session.Armed = true
	return Effect{Action: ActionSchedule, Gen: d.session.Gen, Delay: d.delay}
}

// Fire is called when the timer for gen elapses. It returns the request to
// issue, or false when the timer was superseded.
func (d *Dispatcher) Fire(gen uint64) (Request, bool) {
	if !d.session.Armed || gen != d.session.Gen {
		return Request{}, false
	}
	d.session.Armed = false
	d.session.Seq++
	d.session.Live = true
	query := strings.TrimSpace(d.session.RawText)
	events.Search.Fire(query, d.session.Seq)
	return Request{Seq: d.session.Seq, Query: query}, true
}

// Accept reports whether a response for seq may be applied to the UI.
func (d *Dispatcher) Accept(seq uint64) bool {
	if seq != d.session.Seq || !d.session.Live {
		events.Search.Stale(seq, d.session.Seq)
		return false
	}
	return true
}

// Clear disarms any pending timer and drops interest in in-flight responses.
// The sequence number is left untouched so it never repeats.
func (d *Dispatcher) Clear() {
	d.session.Armed = false
	d.session.Live = false
}

// Reset clears the session text as well, as after a completed navigation.
func (d *Dispatcher) Reset() {
	d.Clear()
	d.session.RawText = ""
	d.session.Gen++
}
