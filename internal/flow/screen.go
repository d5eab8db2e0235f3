package flow

import (
	"fmt"
	"strings"
)

// Screen identifies a full-page UI unit.
type Screen int

const (
	Splash Screen = iota
	Login
	Register
	ForgotPassword
	VerifyOtp
	CreatePassword
	Dashboard
	Home
	Profile
)

var screenNames = [...]string{
	Splash:         "Splash",
	Login:          "Login",
	Register:       "Register",
	ForgotPassword: "ForgotPassword",
	VerifyOtp:      "VerifyOtp",
	CreatePassword: "CreatePassword",
	Dashboard:      "Dashboard",
	Home:           "Home",
	Profile:        "Profile",
}

// route names used by the mobile app for the same screens
var screenAliases = map[string]Screen{
	"forgotpass":  ForgotPassword,
	"verifypass":  VerifyOtp,
	"createpass":  CreatePassword,
	"profilepage": Profile,
}

// Screens lists every screen in declaration order.
func Screens() []Screen {
	out := make([]Screen, len(screenNames))
	for i := range screenNames {
		out[i] = Screen(i)
	}
	return out
}

func (s Screen) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// Valid reports whether s belongs to the closed set of screens.
func (s Screen) Valid() bool {
	return s >= Splash && int(s) < len(screenNames)
}

// MarshalText implements [encoding.TextMarshaler].
func (s Screen) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown screen %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Screen) UnmarshalText(b []byte) error {
	parsed, err := ParseScreen(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseScreen resolves a case-insensitive screen name, accepting the mobile route names as aliases.
func ParseScreen(name string) (Screen, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range screenNames {
		if strings.ToLower(n) == key {
			return Screen(i), nil
		}
	}
	if s, ok := screenAliases[key]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("unknown screen %q", name)
}
