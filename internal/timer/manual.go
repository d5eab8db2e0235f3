package timer

import (
	"sync"
	"time"
)

// Manual is a deterministic [Scheduler] whose clock only moves when [Manual.Advance] is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	entries []*entry
}

type entry struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

var _ Scheduler = (*Manual)(nil)

// NewManual creates a [Manual] clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn to run once d has elapsed on the virtual clock.
func (m *Manual) After(d time.Duration, fn func()) Cancel {
	return m.schedule(d, 0, fn)
}

// Every schedules fn to run each time d elapses. A non-positive d is treated as one nanosecond.
func (m *Manual) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) schedule(d, interval time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	e := &entry{due: m.now + d, interval: interval, seq: m.seq, fn: fn}
	m.entries = append(m.entries, e)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		e.canceled = true
		m.compact()
	}
}

// Advance moves the clock forward by d, running every callback that falls due in due-time order.
// Callbacks scheduled while advancing run too if they fall inside the window. A negative d is treated as zero.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.next(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.canceled = true
			m.compact()
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// Now reports the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports how many callbacks are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// next returns the earliest live entry due at or before target. Caller holds mu.
func (m *Manual) next(target time.Duration) *entry {
	var best *entry
	for _, e := range m.entries {
		if e.canceled || e.due > target {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

// compact drops canceled entries. Caller holds mu.
func (m *Manual) compact() {
	live := m.entries[:0]
	for _, e := range m.entries {
		if !e.canceled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(m.entries); i++ {
		m.entries[i] = nil
	}
	m.entries = live
}
