package app

import (
	"maps"

	"github.com/desertthunder/routerdrawer/internal/flow"
)

// DialogView is the open dialog, if any.
type DialogView struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Confirm bool   `json:"confirm"`
}

// CountdownView is the OTP resend state of the VerifyOtp screen.
type CountdownView struct {
	Remaining     int  `json:"remaining"`
	ResendEnabled bool `json:"resend_enabled"`
}

// View is a snapshot of everything a renderer needs for the current screen.
type View struct {
	Session   string          `json:"session"`
	Screen    flow.Screen     `json:"screen"`
	Instance  uint64          `json:"instance"`
	Stack     []flow.Screen   `json:"stack"`
	Loading   bool            `json:"loading"`
	Fields    []Field         `json:"fields,omitempty"`
	Gender    flow.Gender     `json:"gender"`
	Toggles   map[string]bool `json:"toggles,omitempty"`
	Countdown *CountdownView  `json:"countdown,omitempty"`
	Drawer    bool            `json:"drawer"`
	Dialog    *DialogView     `json:"dialog,omitempty"`
	Actions   []Action        `json:"actions"`
	Error     string          `json:"error,omitempty"`
}

// View returns a snapshot of the current screen. Actions is empty while the screen is loading or a dialog
// is open, since no control accepts input then.
func (a *App) View() View {
	v := View{
		Session:  a.session.ID(),
		Screen:   a.ctrl.Current(),
		Instance: a.ctrl.Instance(),
		Stack:    a.ctrl.Stack(),
		Drawer:   a.ctrl.DrawerOpen(),
		Actions:  []Action{},
	}
	if a.failure != nil {
		v.Error = a.failure.Error()
	}
	if d, confirm, ok := a.modal.Pending(); ok {
		v.Dialog = &DialogView{Title: d.Title, Message: d.Message, Confirm: confirm}
	}

	p := a.current()
	if p == nil {
		return v
	}
	st := p.State()
	v.Loading = st.Loading
	v.Gender = st.Gender
	v.Toggles = maps.Clone(st.Toggles)
	for _, f := range p.fields() {
		f.Value = st.Field(f.Name)
		v.Fields = append(v.Fields, f)
	}
	if otp, ok := p.(*verifyOtp); ok {
		v.Countdown = &CountdownView{Remaining: otp.countdown.Remaining(), ResendEnabled: otp.countdown.Expired()}
	}
	if !v.Loading && v.Dialog == nil {
		v.Actions = append(v.Actions, p.actions()...)
	}
	return v
}

// Field returns the value of the named field in the snapshot.
func (v View) Field(name string) (string, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}
