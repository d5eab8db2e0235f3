// Package timer provides the clock collaborator used by the screen flow: delayed and repeating callbacks,
// simulated-latency tasks and the OTP resend countdown.
//
// # Schedulers
//
// The [Scheduler] interface offers "call back after N" and "call back every N, cancelable". Two implementations exist:
//
//  1. [Manual] : virtual clock advanced explicitly, used by tests and the headless script runner
//  2. [Loop] : real time, but callbacks are posted to a channel drained by the UI event loop
//
// Neither runs a callback on a timer goroutine, so screen state is only ever mutated from one goroutine.
//
// # Tasks
//
// A [Task] is an asynchronous operation reporting completion through a callback. [Delay] is the placeholder
// for a network round trip; a real request can replace it without changing the screens that await it.
//
// # Countdown
//
// [Countdown] ticks a remaining-seconds counter down to zero and flips its expired flag exactly once per arm.
package timer
