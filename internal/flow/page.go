package flow

import (
	"fmt"

	"github.com/desertthunder/routerdrawer/internal/timer"
)

// Page is the live instance of the screen on top of the stack.
type Page interface {
	Screen() Screen
	State() *State
}

// Builder mounts a page for screen. The page must acquire timers through scope.
type Builder func(screen Screen, scope *Scope) Page

// Base implements [Page] and is meant to be embedded by concrete screens.
type Base struct {
	screen Screen
	scope  *Scope
	state  *State
	onFail func(error)
}

// NewBase creates the shared part of a page.
func NewBase(screen Screen, scope *Scope) *Base {
	return &Base{screen: screen, scope: scope, state: NewState()}
}

func (b *Base) Screen() Screen { return b.screen }
func (b *Base) State() *State  { return b.state }
func (b *Base) Scope() *Scope  { return b.scope }

// OnFail sets the hook that receives [ErrRequestFailed] errors from [Base.Await].
func (b *Base) OnFail(fn func(error)) {
	b.onFail = fn
}

// Loading reports whether a timed transition is in flight.
func (b *Base) Loading() bool {
	return b.state.Loading
}

// Await runs task behind the loading overlay and calls then once it succeeds.
//
// While a task is in flight further calls return [ErrBusy] and do nothing. If the task fails the state is
// rolled back to what it was before the submit and the failure hook receives the error wrapped in
// [ErrRequestFailed]. The task is canceled if the page unmounts first.
func (b *Base) Await(task timer.Task, then func()) error {
	if b.state.Loading {
		return ErrBusy
	}
	if b.scope.Closed() {
		return fmt.Errorf("%w: %s is no longer mounted", ErrInvalidNavigation, b.screen)
	}

	snapshot := b.state.Clone()
	b.state.Loading = true

	cancel := task(func(err error) {
		if b.scope.Closed() {
			return
		}
		b.state.Loading = false
		if err != nil {
			b.state.restore(snapshot)
			if b.onFail != nil {
				b.onFail(fmt.Errorf("%w: %s: %w", ErrRequestFailed, b.screen, err))
			}
			return
		}
		if then != nil {
			then()
		}
	})
	b.scope.Defer(cancel)
	return nil
}
