package app

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Action is a control a user can press on a screen.
type Action int

const (
	ActionLogin Action = iota
	ActionRegister
	ActionForgot
	ActionBack
	ActionNext
	ActionSubmit
	ActionResend
	ActionDone
	ActionShowPassword
	ActionMale
	ActionFemale
	ActionUploadCOR
	ActionSignUp
	ActionOpenDrawer
	ActionCloseDrawer
	ActionDrawerDashboard
	ActionDrawerLogout
	ActionLogout
	ActionProfile
	ActionHome
)

var actionInfo = [...]struct{ name, label string }{
	ActionLogin:           {"login", "LOGIN"},
	ActionRegister:        {"register", "REGISTER"},
	ActionForgot:          {"forgot", "Forgot Password?"},
	ActionBack:            {"back", "Back"},
	ActionNext:            {"next", "Next"},
	ActionSubmit:          {"submit", "Submit"},
	ActionResend:          {"resend", "Resend"},
	ActionDone:            {"done", "Done"},
	ActionShowPassword:    {"show-password", "Show Password"},
	ActionMale:            {"male", "Male"},
	ActionFemale:          {"female", "Female"},
	ActionUploadCOR:       {"upload-cor", "Upload COR"},
	ActionSignUp:          {"signup", "SIGN UP"},
	ActionOpenDrawer:      {"open-drawer", "Open Drawer"},
	ActionCloseDrawer:     {"close-drawer", "Close Drawer"},
	ActionDrawerDashboard: {"drawer-dashboard", "Dashboard"},
	ActionDrawerLogout:    {"drawer-logout", "Logout"},
	ActionLogout:          {"logout", "Logout"},
	ActionProfile:         {"profile", "Profile"},
	ActionHome:            {"home", "Home"},
}

func (a Action) valid() bool { return a >= 0 && int(a) < len(actionInfo) }

// String returns the script name of the action.
func (a Action) String() string {
	if !a.valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionInfo[a].name
}

// Label returns the button caption.
func (a Action) Label() string {
	if !a.valid() {
		return a.String()
	}
	return actionInfo[a].label
}

// ParseAction resolves an action by script name, case-insensitively.
func ParseAction(name string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, info := range actionInfo {
		if info.name == key {
			return Action(i), nil
		}
	}
	if hint := closestAction(key); hint != "" {
		return 0, fmt.Errorf("%w: unknown action %q (did you mean %q?)", ErrUnavailable, name, hint)
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrUnavailable, name)
}

// closestAction returns the action name within two edits of key, if any.
func closestAction(key string) string {
	best, bestDist := "", 3
	for _, info := range actionInfo {
		if d := levenshtein.ComputeDistance(key, info.name); d < bestDist {
			best, bestDist = info.name, d
		}
	}
	return best
}

// MarshalText implements [encoding.TextMarshaler].
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
