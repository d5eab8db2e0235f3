// Package app assembles the screens of the router-and-drawer shell on top of [flow.Controller].
//
// [App] is the surface renderers talk to: they read a [View] snapshot, and feed presses, field edits and dialog
// answers back. Every call must come from the single UI event loop that also runs the scheduler's callbacks.
package app

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/session"
	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/desertthunder/routerdrawer/internal/timer"
)

// TaskFunc builds the task a screen awaits for action. The default waits the configured delay.
type TaskFunc func(screen flow.Screen, action Action, d time.Duration) timer.Task

// App owns the navigation controller, the session and the modal prompter of one running shell.
type App struct {
	timings shared.TimingsConfig
	sched   timer.Scheduler
	ctrl    *flow.Controller
	session *session.Session
	modal   *Modal
	tasks   TaskFunc
	logger  *log.Logger
	failure error
}

// Opts contains configuration options for creating an App.
type Opts struct {
	Config    *shared.Config
	Scheduler timer.Scheduler
	Logger    *log.Logger
	Tasks     TaskFunc
}

// New wires an App. Call [App.Start] to mount the splash screen.
func New(opts Opts) *App {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timer.NewManual()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	a := &App{
		timings: opts.Config.Timings,
		sched:   opts.Scheduler,
		modal:   &Modal{},
		tasks:   opts.Tasks,
	}
	if a.tasks == nil {
		a.tasks = func(_ flow.Screen, _ Action, d time.Duration) timer.Task {
			return timer.Delay(a.sched, d)
		}
	}

	a.ctrl = flow.New(a.sched, a.build, flow.WithLogger(opts.Logger))
	logoutTask := func(screen flow.Screen) timer.Task {
		return a.tasks(screen, ActionLogout, a.timings.Logout)
	}
	a.session = session.New(session.Opts{
		Controller:  a.ctrl,
		Prompter:    a.modal,
		Scheduler:   a.sched,
		LogoutDelay: a.timings.Logout,
		LogoutTask:  logoutTask,
		Logger:      opts.Logger,
	})
	a.logger = shared.WithLogger(opts.Logger, "session", a.session.ID())

	a.ctrl.OnChange(func(flow.Change) {
		a.modal.Dismiss()
		a.failure = nil
	})
	return a
}

// Start mounts the splash screen.
func (a *App) Start() error {
	a.logger.Info("session started")
	return a.ctrl.Start()
}

// Close tears the session down, canceling every pending timer of the current screen.
func (a *App) Close() {
	a.modal.Dismiss()
	a.ctrl.Close()
	a.logger.Info("session closed")
}

// Controller exposes the navigation controller.
func (a *App) Controller() *flow.Controller { return a.ctrl }

// SessionID returns the id of the running session.
func (a *App) SessionID() string { return a.session.ID() }

// Press activates a control on the current screen.
//
// Presses while a dialog is open return [ErrBlocked]; presses while the screen is loading return
// [flow.ErrBusy]; controls the screen does not currently offer return [ErrUnavailable].
func (a *App) Press(act Action) error {
	err := a.press(act)
	switch {
	case err == nil:
	case IsSilent(err):
		a.logger.Debug("press ignored", "screen", a.ctrl.Current(), "action", act, "err", err)
	default:
		a.logger.Warn("press failed", "screen", a.ctrl.Current(), "action", act, "err", err)
	}
	return err
}

func (a *App) press(act Action) error {
	if _, _, open := a.modal.Pending(); open {
		return ErrBlocked
	}
	p := a.current()
	if p == nil {
		return fmt.Errorf("%w: nothing mounted", ErrUnavailable)
	}
	if p.State().Loading {
		return flow.ErrBusy
	}
	if !slices.Contains(p.actions(), act) {
		return fmt.Errorf("%w: %s on %s", ErrUnavailable, act, p.Screen())
	}
	return p.press(act)
}

// SetField stores a form value on the current screen.
func (a *App) SetField(name, value string) error {
	p := a.current()
	if p == nil || !slices.ContainsFunc(p.fields(), func(f Field) bool { return f.Name == name }) {
		return fmt.Errorf("%w: field %q", ErrUnavailable, name)
	}
	p.State().SetField(name, value)
	return nil
}

// Answer resolves the open dialog. Acknowledgments accept any answer.
func (a *App) Answer(yes bool) error {
	return a.modal.Resolve(yes)
}

func (a *App) current() page {
	p, _ := a.ctrl.Page().(page)
	return p
}

func (a *App) fail(err error) {
	a.failure = err
	a.logger.Warn("request failed", "screen", a.ctrl.Current(), "err", err)
}

// await runs the task for action behind p's loading overlay, then performs next.
func (a *App) await(p *flow.Base, act Action, d time.Duration, next func() error) error {
	return p.Await(a.tasks(p.Screen(), act, d), func() {
		if err := next(); err != nil && !errors.Is(err, flow.ErrInvalidNavigation) {
			a.logger.Error("transition failed", "screen", p.Screen(), "err", err)
		}
	})
}

// reset replaces the stack from a timer or dialog callback, where there is no caller to return the error to.
func (a *App) reset(s flow.Screen) {
	err := a.ctrl.Reset(s)
	switch {
	case err == nil:
	case flow.IsSilent(err):
		a.logger.Debug("reset dropped", "to", s, "err", err)
	default:
		a.logger.Error("reset failed", "to", s, "err", err)
	}
}

func (a *App) navigate(s flow.Screen) func() error {
	return func() error { return a.ctrl.Navigate(s) }
}
