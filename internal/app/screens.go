package app

import (
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/session"
	"github.com/desertthunder/routerdrawer/internal/timer"
	"golang.org/x/time/rate"
)

// Field describes a form input of a screen.
type Field struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Secret bool   `json:"secret,omitempty"`
	Value  string `json:"value"`
}

type page interface {
	flow.Page
	fields() []Field
	actions() []Action
	press(Action) error
}

func (a *App) build(s flow.Screen, scope *flow.Scope) flow.Page {
	base := flow.NewBase(s, scope)
	base.OnFail(a.fail)

	var p page
	switch s {
	case flow.Splash:
		p = newSplash(a, base)
	case flow.Login:
		p = &login{Base: base, app: a}
	case flow.Register:
		p = &register{Base: base, app: a}
	case flow.ForgotPassword:
		p = &forgotPassword{Base: base, app: a}
	case flow.VerifyOtp:
		p = newVerifyOtp(a, base)
	case flow.CreatePassword:
		p = &createPassword{Base: base, app: a}
	case flow.Dashboard:
		p = &dashboard{Base: base, app: a}
	case flow.Home:
		p = &home{Base: base, app: a}
	case flow.Profile:
		p = &profile{Base: base, app: a}
	}
	return p
}

// splash holds the title card for the configured delay, then replaces the stack with Login.
type splash struct {
	*flow.Base
}

func newSplash(a *App, base *flow.Base) *splash {
	base.Scope().After(a.timings.Splash, func() {
		a.reset(flow.Login)
	})
	return &splash{Base: base}
}

func (p *splash) fields() []Field      { return nil }
func (p *splash) actions() []Action    { return nil }
func (p *splash) press(a Action) error { return ErrUnavailable }

type login struct {
	*flow.Base
	app *App
}

func (p *login) fields() []Field {
	return []Field{{Name: "username", Label: "Username"}, {Name: "password", Label: "Password", Secret: true}}
}

func (p *login) actions() []Action {
	return []Action{ActionLogin, ActionRegister, ActionForgot}
}

func (p *login) press(act Action) error {
	d := p.app.timings.Login
	switch act {
	case ActionLogin:
		return p.app.await(p.Base, act, d, p.app.navigate(flow.Dashboard))
	case ActionRegister:
		return p.app.await(p.Base, act, d, p.app.navigate(flow.Register))
	case ActionForgot:
		return p.app.await(p.Base, act, d, p.app.navigate(flow.ForgotPassword))
	}
	return ErrUnavailable
}

type forgotPassword struct {
	*flow.Base
	app *App
}

func (p *forgotPassword) fields() []Field {
	return []Field{{Name: "email", Label: "Email Address"}}
}

func (p *forgotPassword) actions() []Action {
	return []Action{ActionBack, ActionNext}
}

func (p *forgotPassword) press(act Action) error {
	switch act {
	case ActionBack:
		return p.app.ctrl.Navigate(flow.Login)
	case ActionNext:
		return p.app.await(p.Base, act, p.app.timings.Recovery, p.app.navigate(flow.VerifyOtp))
	}
	return ErrUnavailable
}

// verifyOtp owns the resend countdown; the countdown lives exactly as long as the page.
type verifyOtp struct {
	*flow.Base
	app       *App
	countdown *timer.Countdown
}

func newVerifyOtp(a *App, base *flow.Base) *verifyOtp {
	p := &verifyOtp{Base: base, app: a}

	p.countdown = timer.NewCountdown(base.Scope().Scheduler(), a.timings.Tick)
	sometimes := rate.Sometimes{First: 1, Every: 30}
	p.countdown.OnTick = func(remaining int) {
		sometimes.Do(func() { a.logger.Debug("otp countdown", "remaining", remaining) })
	}
	p.countdown.OnExpire = func() { a.logger.Info("otp resend enabled") }
	p.countdown.Start(a.timings.OTPSeconds)
	base.Scope().Defer(p.countdown.Stop)
	return p
}

func (p *verifyOtp) fields() []Field {
	return []Field{{Name: "otp", Label: "Enter OTP Code"}}
}

func (p *verifyOtp) actions() []Action {
	if p.countdown.Expired() {
		return []Action{ActionBack, ActionResend, ActionSubmit}
	}
	return []Action{ActionBack, ActionSubmit}
}

func (p *verifyOtp) press(act Action) error {
	switch act {
	case ActionBack:
		return p.app.ctrl.GoBack()
	case ActionResend:
		p.countdown.Reset()
		return nil
	case ActionSubmit:
		return p.app.await(p.Base, act, p.app.timings.Recovery, p.app.navigate(flow.CreatePassword))
	}
	return ErrUnavailable
}

// RecoveryDialog is shown once a new password has been accepted.
var RecoveryDialog = flow.Dialog{
	Title:   "Account Recovery",
	Message: "Account Password has been changed successfully.\nYou are now redirected back to the Login Page.",
}

type createPassword struct {
	*flow.Base
	app *App
}

func (p *createPassword) fields() []Field {
	secret := !p.State().Toggles[toggleShowPassword]
	return []Field{
		{Name: "password", Label: "New Password", Secret: secret},
		{Name: "confirm", Label: "Confirm New Password", Secret: secret},
	}
}

func (p *createPassword) actions() []Action {
	return []Action{ActionShowPassword, ActionDone}
}

func (p *createPassword) press(act Action) error {
	switch act {
	case ActionShowPassword:
		p.State().Toggle(toggleShowPassword)
		return nil
	case ActionDone:
		scope := p.Scope()
		return p.app.await(p.Base, act, p.app.timings.Recovery, func() error {
			p.app.modal.Notify(RecoveryDialog, scope.Guard(func() { p.app.reset(flow.Login) }))
			return nil
		})
	}
	return ErrUnavailable
}

// dashboard hosts the drawer; the drawer actions only show while it is open.
type dashboard struct {
	*flow.Base
	app *App
}

func (p *dashboard) fields() []Field { return nil }

func (p *dashboard) actions() []Action {
	if p.app.ctrl.DrawerOpen() {
		return []Action{ActionDrawerDashboard, ActionDrawerLogout, ActionCloseDrawer}
	}
	return []Action{ActionOpenDrawer, ActionLogout}
}

func (p *dashboard) press(act Action) error {
	switch act {
	case ActionOpenDrawer:
		return p.app.ctrl.OpenDrawer()
	case ActionCloseDrawer:
		return p.app.ctrl.CloseDrawer()
	case ActionDrawerDashboard:
		return p.app.session.Select(p.Base, session.ItemDashboard)
	case ActionDrawerLogout:
		return p.app.session.Select(p.Base, session.ItemLogout)
	case ActionLogout:
		return p.app.session.Logout(p.Base)
	}
	return ErrUnavailable
}

type home struct {
	*flow.Base
	app *App
}

func (p *home) fields() []Field {
	return []Field{{Name: "search", Label: "Browse Products here..."}}
}

func (p *home) actions() []Action { return []Action{ActionProfile} }

func (p *home) press(act Action) error {
	if act == ActionProfile {
		return p.app.ctrl.Navigate(flow.Profile)
	}
	return ErrUnavailable
}

type profile struct {
	*flow.Base
	app *App
}

func (p *profile) fields() []Field { return nil }

func (p *profile) actions() []Action { return []Action{ActionHome, ActionLogout} }

func (p *profile) press(act Action) error {
	switch act {
	case ActionHome:
		return p.app.ctrl.Navigate(flow.Home)
	case ActionLogout:
		return p.app.session.Logout(p.Base)
	}
	return ErrUnavailable
}

const (
	toggleShowPassword = "show_password"
	toggleCORUploaded  = "cor_uploaded"
)
