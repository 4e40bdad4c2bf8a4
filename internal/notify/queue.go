package notify

import (
	"sync"
	"time"

	"github.com/atomicstack/evsched/internal/clock"
	"github.com/atomicstack/evsched/internal/logging/events"
)

const (
	DefaultAutoDismiss = 5000 * time.Millisecond
	DefaultFadeOut     = 500 * time.Millisecond
)

// Notifier is the enqueue side of the queue, used by components that report
// outcomes without knowing how they are displayed.
type Notifier interface {
	Enqueue(message string, kind Kind) ID
}

// ID identifies an entry. IDs increase with every enqueue and are never reused.
type ID uint64

// Entry is a snapshot of one on-screen notification.
type Entry struct {
	ID        ID
	Message   string
	Kind      Kind
	CreatedAt time.Time
	Fading    bool
}

// ChangeKind describes what happened to the queue.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeFading
	ChangeRemoved
)

// Change is published whenever the set of entries changes.
type Change struct {
	Kind ChangeKind
	ID   ID
}

// Options tunes queue timing. Zero values use the defaults.
type Options struct {
	AutoDismiss time.Duration
	FadeOut     time.Duration
	Scheduler   clock.Scheduler
}

type item struct {
	Entry
	timer clock.Timer
}

// Queue holds transient notifications in insertion order.
type Queue struct {
	autoDismiss time.Duration
	fadeOut     time.Duration
	sched       clock.Scheduler

	mu      sync.Mutex
	nextID  ID
	items   []*item
	changes chan Change
	closed  bool
}

// New constructs an empty queue.
func New(opts Options) *Queue {
	q := &Queue{
		autoDismiss: opts.AutoDismiss,
		fadeOut:     opts.FadeOut,
		sched:       opts.Scheduler,
		changes:     make(chan Change, 32),
	}
	if q.autoDismiss <= 0 {
		q.autoDismiss = DefaultAutoDismiss
	}
	if q.fadeOut <= 0 {
		q.fadeOut = DefaultFadeOut
	}
	if q.sched == nil {
		q.sched = clock.Real()
	}
	return q
}

// Changes streams queue mutations. Sends never block; a full buffer drops the
// change because readers always re-read Entries.
func (q *Queue) Changes() <-chan Change {
	return q.changes
}

// Enqueue appends a new entry after all existing ones and returns its ID.
func (q *Queue) Enqueue(message string, kind Kind) ID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	id := q.nextID
	it := &item{Entry: Entry{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: q.sched.Now(),
	}}
	if kind.AutoDismiss() && !q.closed {
		it.timer = q.sched.AfterFunc(q.autoDismiss, func() { q.fade(id) })
	}
	q.items = append(q.items, it)
	events.Toast.Enqueue(uint64(id), kind.String(), message)
	q.publishLocked(Change{Kind: ChangeAdded, ID: id})
	return id
}

// Dismiss removes the entry with the given ID. It reports false when no such
// entry exists.
func (q *Queue) Dismiss(id ID) bool {
	return q.remove(id, true)
}

// Entries returns the current entries in enqueue order.
func (q *Queue) Entries() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Entry, len(q.items))
	for i, it := range q.items {
		out[i] = it.Entry
	}
	return out
}

// Len returns the number of live entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Newest returns the most recently enqueued entry still present.
func (q *Queue) Newest() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Entry{}, false
	}
	return q.items[len(q.items)-1].Entry, true
}

// Close stops every outstanding timer and closes the change stream.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for _, it := range q.items {
		if it.timer != nil {
			it.timer.Stop()
			it.timer = nil
		}
	}
	close(q.changes)
}

func (q *Queue) fade(id ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := q.indexLocked(id)
	if idx < 0 || q.closed {
		return
	}
	it := q.items[idx]
	if it.Fading {
		return
	}
	it.Fading = true
	it.timer = q.sched.AfterFunc(q.fadeOut, func() { q.remove(id, false) })
	events.Toast.Fade(uint64(id))
	q.publishLocked(Change{Kind: ChangeFading, ID: id})
}

func (q *Queue) remove(id ID, explicit bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	idx := q.indexLocked(id)
	if idx < 0 {
		return false
	}
	if t := q.items[idx].timer; t != nil {
		t.Stop()
	}
	q.items = append(q.items[:idx], q.items[idx+1:]...)
	events.Toast.Remove(uint64(id), explicit)
	q.publishLocked(Change{Kind: ChangeRemoved, ID: id})
	return true
}

func (q *Queue) indexLocked(id ID) int {
	for i, it := range q.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) publishLocked(c Change) {
	if q.closed {
		return
	}
	select {
	case q.changes <- c:
	default:
	}
}
