// Package clock abstracts the fire-once timers used by the interaction
// controllers so tests can advance time by hand.
package clock

import "time"

// Timer is a pending fire-once callback.
type Timer interface {
	Stop() bool
}

// Scheduler starts fire-once timers and reports the current time.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realScheduler struct{}

// Real returns a Scheduler backed by the runtime timers.
func Real() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) Now() time.Time {
	return time.Now()
}
