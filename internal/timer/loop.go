package timer

import (
	"time"

	"go.uber.org/atomic"
)

// Loop is a real-time [Scheduler]. Timers fire on runtime goroutines, but their callbacks are only posted to
// [Loop.C]; the owner of the event loop receives and runs them, so callbacks never race with UI updates.
type Loop struct {
	c      chan func()
	done   chan struct{}
	closed *atomic.Bool
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates a [Loop] whose channel holds up to buf queued callbacks.
func NewLoop(buf int) *Loop {
	return &Loop{
		c:      make(chan func(), buf),
		done:   make(chan struct{}),
		closed: atomic.NewBool(false),
	}
}

// C delivers callbacks that are due. Each received func must be called on the event loop.
func (l *Loop) C() <-chan func() {
	return l.c
}

// After posts fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Cancel {
	canceled := atomic.NewBool(false)
	t := time.AfterFunc(d, func() {
		l.post(canceled, fn)
	})
	return func() {
		canceled.Store(true)
		t.Stop()
	}
}

// Every posts fn each time d elapses until canceled.
func (l *Loop) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		d = time.Millisecond
	}
	canceled := atomic.NewBool(false)
	stop := make(chan struct{})
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.post(canceled, fn)
			case <-stop:
				return
			case <-l.done:
				return
			}
		}
	}()

	return func() {
		if canceled.CompareAndSwap(false, true) {
			close(stop)
		}
	}
}

// Close stops delivering callbacks. Timers still pending are dropped.
func (l *Loop) Close() {
	if l.closed.CompareAndSwap(false, true) {
		close(l.done)
	}
}

// post queues fn, wrapped so that a cancel issued on the event loop after queueing still suppresses it.
func (l *Loop) post(canceled *atomic.Bool, fn func()) {
	if canceled.Load() || l.closed.Load() {
		return
	}
	guarded := func() {
		if !canceled.Load() {
			fn()
		}
	}
	select {
	case l.c <- guarded:
	case <-l.done:
	}
}
