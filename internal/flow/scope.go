package flow

import (
	"time"

	"github.com/desertthunder/routerdrawer/internal/timer"
)

// Scope holds the resources a mounted page acquired. Closing it releases them in reverse order, once.
type Scope struct {
	sched    timer.Scheduler
	releases []func()
	closed   bool
}

func newScope(s timer.Scheduler) *Scope {
	return &Scope{sched: s}
}

// Scheduler returns the clock the scope's timers run on.
func (s *Scope) Scheduler() timer.Scheduler {
	return s.sched
}

// Defer registers release to run on [Scope.Close]. On a closed scope it runs immediately.
func (s *Scope) Defer(release func()) {
	if release == nil {
		return
	}
	if s.closed {
		release()
		return
	}
	s.releases = append(s.releases, release)
}

// After schedules fn on the scope's clock and cancels it when the scope closes.
func (s *Scope) After(d time.Duration, fn func()) timer.Cancel {
	cancel := s.sched.After(d, s.Guard(fn))
	s.Defer(cancel)
	return cancel
}

// Every schedules a repeating fn that stops when the scope closes.
func (s *Scope) Every(d time.Duration, fn func()) timer.Cancel {
	cancel := s.sched.Every(d, s.Guard(fn))
	s.Defer(cancel)
	return cancel
}

// Guard wraps fn so that it does nothing once the scope is closed.
func (s *Scope) Guard(fn func()) func() {
	return func() {
		if !s.closed {
			fn()
		}
	}
}

// Closed reports whether the owning page has unmounted.
func (s *Scope) Closed() bool {
	return s.closed
}

// Close releases every registered resource, most recent first.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
