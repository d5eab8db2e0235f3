package flow

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/routerdrawer/internal/timer"
)

// Op names the navigation operation that produced a [Change].
type Op int

const (
	OpStart Op = iota
	OpNavigate
	OpBack
	OpReset
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpNavigate:
		return "navigate"
	case OpBack:
		return "back"
	case OpReset:
		return "reset"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Change describes a completed transition.
type Change struct {
	Op    Op
	From  Screen
	To    Screen
	Stack []Screen
}

// Controller owns the navigation stack and the page mounted on top of it.
//
// All methods must be called from the UI event loop.
type Controller struct {
	sched     timer.Scheduler
	build     Builder
	logger    *log.Logger
	stack     *Stack
	page      Page
	scope     *Scope
	drawer    bool
	instance  uint64
	started   bool
	closed    bool
	listeners []func(Change)
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLogger sets the logger transitions are reported to.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller whose stack holds [Splash]. Call [Controller.Start] to mount it.
func New(s timer.Scheduler, build Builder, opts ...Option) *Controller {
	c := &Controller{
		sched:  s,
		build:  build,
		logger: log.New(io.Discard),
		stack:  NewStack(Splash),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start mounts the splash page. It may be called once.
func (c *Controller) Start() error {
	if c.started {
		return fmt.Errorf("%w: controller already started", ErrInvalidNavigation)
	}
	c.started = true
	c.mount(Splash)
	c.notify(Change{Op: OpStart, From: Splash, To: Splash, Stack: c.stack.Entries()})
	return nil
}

// OnChange registers fn to run after every transition.
func (c *Controller) OnChange(fn func(Change)) {
	c.listeners = append(c.listeners, fn)
}

// Navigate pushes target and makes it current. Repeated targets are allowed.
func (c *Controller) Navigate(target Screen) error {
	if err := c.check(target); err != nil {
		return err
	}
	return c.transition(OpNavigate, func() { c.stack.Push(target) })
}

// GoBack pops the current screen. On a single-entry stack it is a no-op returning [ErrInvalidNavigation].
func (c *Controller) GoBack() error {
	if err := c.check(Splash); err != nil {
		return err
	}
	if c.stack.Len() <= 1 {
		return fmt.Errorf("%w: cannot pop the last screen", ErrInvalidNavigation)
	}
	return c.transition(OpBack, func() { c.stack.Pop() })
}

// Reset replaces the stack with the single entry target.
func (c *Controller) Reset(target Screen) error {
	if err := c.check(target); err != nil {
		return err
	}
	return c.transition(OpReset, func() { c.stack.Reset(target) })
}

// OpenDrawer opens the side drawer. Outside Dashboard it is a no-op returning [ErrInvalidNavigation].
func (c *Controller) OpenDrawer() error {
	return c.setDrawer(true)
}

// CloseDrawer closes the side drawer. Outside Dashboard it is a no-op returning [ErrInvalidNavigation].
func (c *Controller) CloseDrawer() error {
	return c.setDrawer(false)
}

// DrawerOpen reports the drawer state; it is always false outside Dashboard.
func (c *Controller) DrawerOpen() bool {
	return c.drawer && c.Current() == Dashboard
}

// Current returns the screen on top of the stack.
func (c *Controller) Current() Screen {
	top, _ := c.stack.Peek()
	return top
}

// Page returns the mounted page, or nil before [Controller.Start] and after [Controller.Close].
func (c *Controller) Page() Page {
	return c.page
}

// Stack returns a copy of the navigation history, bottom first.
func (c *Controller) Stack() []Screen {
	return c.stack.Entries()
}

// Instance counts mounts; it changes whenever a new page replaces the previous one.
func (c *Controller) Instance() uint64 {
	return c.instance
}

// Close unmounts the current page. The controller accepts no further transitions.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.unmount()
}

func (c *Controller) check(target Screen) error {
	switch {
	case c.closed:
		return fmt.Errorf("%w: controller closed", ErrInvalidNavigation)
	case !c.started:
		return fmt.Errorf("%w: controller not started", ErrInvalidNavigation)
	case !target.Valid():
		return fmt.Errorf("%w: unknown screen %d", ErrInvalidNavigation, int(target))
	}
	return nil
}

func (c *Controller) setDrawer(open bool) error {
	if c.closed || c.Current() != Dashboard {
		return fmt.Errorf("%w: drawer only exists on %s", ErrInvalidNavigation, Dashboard)
	}
	if c.drawer != open {
		c.drawer = open
		c.logger.Debug("drawer", "open", open)
	}
	return nil
}

func (c *Controller) transition(op Op, mutate func()) error {
	from := c.Current()
	c.unmount()
	mutate()
	c.drawer = false
	to := c.Current()
	c.mount(to)

	change := Change{Op: op, From: from, To: to, Stack: c.stack.Entries()}
	c.logger.Info("transition", "op", op, "from", from, "to", to, "depth", len(change.Stack))
	c.notify(change)
	return nil
}

func (c *Controller) mount(screen Screen) {
	c.instance++
	c.scope = newScope(c.sched)
	c.page = c.build(screen, c.scope)
}

func (c *Controller) unmount() {
	if c.scope != nil {
		c.scope.Close()
	}
	c.scope = nil
	c.page = nil
}

func (c *Controller) notify(change Change) {
	for _, fn := range c.listeners {
		fn(change)
	}
}
