package timer

import "time"

// DefaultOTPSeconds is the resend countdown length used by the OTP screen.
const DefaultOTPSeconds = 180

// Countdown is a per-second counter that enables an action once it reaches zero.
//
// It is owned by a single screen instance; call [Countdown.Stop] when that screen goes away.
type Countdown struct {
	sched     Scheduler
	tick      time.Duration
	initial   int
	remaining int
	expired   bool
	armed     bool
	cancel    Cancel

	// OnTick runs after every decrement.
	OnTick func(remaining int)
	// OnExpire runs once each time the counter reaches zero.
	OnExpire func()
}

// NewCountdown creates a stopped [Countdown] that decrements once per tick.
func NewCountdown(s Scheduler, tick time.Duration) *Countdown {
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{sched: s, tick: tick, initial: DefaultOTPSeconds, cancel: noop}
}

// Start sets the counter to seconds and arms it. A counter started at zero is expired immediately.
func (c *Countdown) Start(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.Stop()
	c.initial = seconds
	c.remaining = seconds
	c.expired = false

	if seconds == 0 {
		c.expire()
		return
	}
	c.cancel = c.sched.Every(c.tick, c.step)
	c.armed = true
}

// Reset restarts the counter from the value last passed to [Countdown.Start].
func (c *Countdown) Reset() {
	c.Start(c.initial)
}

// Stop disarms the counter without changing the remaining value.
func (c *Countdown) Stop() {
	c.cancel()
	c.cancel = noop
	c.armed = false
}

// Remaining reports the seconds left. It is never negative.
func (c *Countdown) Remaining() int { return c.remaining }

// Expired reports whether the counter has reached zero, i.e. whether resend is enabled.
func (c *Countdown) Expired() bool { return c.expired }

// Running reports whether the counter is still armed.
func (c *Countdown) Running() bool { return c.armed }

func (c *Countdown) step() {
	if c.remaining <= 0 {
		return
	}
	c.remaining--
	if c.OnTick != nil {
		c.OnTick(c.remaining)
	}
	if c.remaining == 0 {
		c.Stop()
		c.expire()
	}
}

func (c *Countdown) expire() {
	c.expired = true
	if c.OnExpire != nil {
		c.OnExpire()
	}
}
