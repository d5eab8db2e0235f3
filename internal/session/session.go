// Package session implements the drawer nested inside Dashboard and the logout flow shared by Dashboard and
// Profile.
package session

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/shared"
	"github.com/desertthunder/routerdrawer/internal/timer"
)

// DefaultLogoutDelay stands in for the sign-out round trip.
const DefaultLogoutDelay = 3 * time.Second

// Item is an entry of the Dashboard drawer.
type Item int

const (
	ItemDashboard Item = iota
	ItemLogout
)

func (i Item) String() string {
	switch i {
	case ItemDashboard:
		return "Dashboard"
	case ItemLogout:
		return "Logout"
	default:
		return fmt.Sprintf("Item(%d)", int(i))
	}
}

// Items lists the drawer entries in display order.
func Items() []Item {
	return []Item{ItemDashboard, ItemLogout}
}

// LogoutDialog is the confirmation shown before signing out.
var LogoutDialog = flow.Dialog{
	Title:   "Logout Confirmation",
	Message: "Are you sure you want to logout?",
}

// Session is the single signed-in navigation session of a running app.
type Session struct {
	id     string
	ctrl   *flow.Controller
	prompt flow.Prompter
	sched  timer.Scheduler
	delay  time.Duration
	task   func(screen flow.Screen) timer.Task
	logger *log.Logger
}

// Opts configures a [Session].
type Opts struct {
	Controller  *flow.Controller
	Prompter    flow.Prompter
	Scheduler   timer.Scheduler
	LogoutDelay time.Duration
	// LogoutTask builds the sign-out request for the screen logging out. Defaults to waiting LogoutDelay.
	LogoutTask  func(screen flow.Screen) timer.Task
	Logger      *log.Logger
}

// New creates a session with a fresh v4 id.
func New(opts Opts) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.LogoutDelay < 0 {
		opts.LogoutDelay = DefaultLogoutDelay
	}
	id := shared.GenerateID()
	s := &Session{
		id:     id,
		ctrl:   opts.Controller,
		prompt: opts.Prompter,
		sched:  opts.Scheduler,
		delay:  opts.LogoutDelay,
		task:   opts.LogoutTask,
		logger: opts.Logger.With("session", id),
	}
	if s.task == nil {
		s.task = func(flow.Screen) timer.Task { return timer.Delay(s.sched, s.delay) }
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Select activates a drawer item. The drawer must be open on Dashboard.
func (s *Session) Select(page *flow.Base, item Item) error {
	if !s.ctrl.DrawerOpen() {
		return fmt.Errorf("%w: drawer is closed", flow.ErrInvalidNavigation)
	}
	switch item {
	case ItemDashboard:
		// Already on Dashboard; picking it again only dismisses the drawer.
		return s.ctrl.CloseDrawer()
	case ItemLogout:
		return s.Logout(page)
	default:
		return fmt.Errorf("%w: unknown drawer item %d", flow.ErrInvalidNavigation, int(item))
	}
}

// Logout asks for confirmation. Yes signs out after the logout delay and resets the stack to Login;
// No closes the drawer and leaves the stack alone.
func (s *Session) Logout(page *flow.Base) error {
	if page.Loading() {
		return flow.ErrBusy
	}
	scope := page.Scope()
	s.prompt.Confirm(LogoutDialog, func(yes bool) {
		if scope.Closed() {
			return
		}
		_ = s.ctrl.CloseDrawer()
		if !yes {
			s.logger.Debug("logout dismissed", "screen", page.Screen())
			return
		}
		err := page.Await(s.task(page.Screen()), func() {
			s.logger.Info("signed out", "from", page.Screen())
			if err := s.ctrl.Reset(flow.Login); err != nil {
				s.logger.Warn("sign out reset failed", "err", err)
			}
		})
		if err != nil {
			s.logger.Debug("logout ignored", "err", err)
		}
	})
	return nil
}
