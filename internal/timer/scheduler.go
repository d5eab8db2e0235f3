package timer

import "time"

// Cancel stops a scheduled callback. Calling it more than once is harmless.
type Cancel func()

// Scheduler schedules callbacks on the caller's event loop.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
	Every(d time.Duration, fn func()) Cancel
}

// Task is an asynchronous operation. It calls done exactly once when finished unless canceled first.
type Task func(done func(error)) Cancel

// Delay returns a [Task] that completes successfully after d.
func Delay(s Scheduler, d time.Duration) Task {
	return func(done func(error)) Cancel {
		return s.After(d, func() { done(nil) })
	}
}

// Fail returns a [Task] that completes with err after d.
func Fail(s Scheduler, d time.Duration, err error) Task {
	return func(done func(error)) Cancel {
		return s.After(d, func() { done(err) })
	}
}

func noop() {}
