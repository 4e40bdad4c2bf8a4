package testutil

import (
	"sync"

	"github.com/atomicstack/evsched/internal/notify"
)

// Notice is one recorded notification.
type Notice struct {
	Message string
	Kind    notify.Kind
}

// RecordingNotifier captures enqueued notifications without timers.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *RecordingNotifier) Enqueue(message string, kind notify.Kind) notify.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Message: message, Kind: kind})
	return notify.ID(len(r.notices))
}

// Notices returns a copy of everything enqueued so far.
func (r *RecordingNotifier) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
