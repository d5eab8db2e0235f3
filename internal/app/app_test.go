package app

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/session"
	tu "github.com/desertthunder/routerdrawer/internal/testing"
	"github.com/desertthunder/routerdrawer/internal/timer"
)

func newTestApp(t *testing.T) (*App, *timer.Manual) {
	t.Helper()
	clock := timer.NewManual()
	a := New(Opts{Scheduler: clock})
	if err := a.Start(); err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(a.Close)
	return a, clock
}

// at drives a fresh app to the given screen along the normal flow.
func at(t *testing.T, screen flow.Screen) (*App, *timer.Manual) {
	t.Helper()
	a, clock := newTestApp(t)
	clock.Advance(2 * time.Second)

	press := func(act Action, wait time.Duration) {
		t.Helper()
		if err := a.Press(act); err != nil {
			t.Fatalf("press %s on %s: %v", act, a.View().Screen, err)
		}
		clock.Advance(wait)
	}

	switch screen {
	case flow.Login:
	case flow.Register:
		press(ActionRegister, 3*time.Second)
	case flow.ForgotPassword:
		press(ActionForgot, 3*time.Second)
	case flow.VerifyOtp:
		press(ActionForgot, 3*time.Second)
		press(ActionNext, 2*time.Second)
	case flow.CreatePassword:
		press(ActionForgot, 3*time.Second)
		press(ActionNext, 2*time.Second)
		press(ActionSubmit, 2*time.Second)
	case flow.Dashboard:
		press(ActionLogin, 3*time.Second)
	default:
		t.Fatalf("no path to %s", screen)
	}

	if got := a.View().Screen; got != screen {
		t.Fatalf("expected to reach %s, got %s", screen, got)
	}
	return a, clock
}

func TestScenarios(t *testing.T) {
	t.Run("A: splash resets to Login after 2s", func(t *testing.T) {
		a, clock := newTestApp(t)
		if a.View().Screen != flow.Splash {
			t.Fatalf("expected Splash, got %s", a.View().Screen)
		}

		clock.Advance(1999 * time.Millisecond)
		if a.View().Screen != flow.Splash {
			t.Fatal("left Splash early")
		}

		clock.Advance(time.Millisecond)
		tu.AssertStack(t, a.View().Stack, flow.Login)
		if clock.Pending() != 0 {
			t.Errorf("expected splash timer released, got %d pending", clock.Pending())
		}
	})

	t.Run("B: REGISTER waits 3s behind the loading overlay", func(t *testing.T) {
		a, clock := at(t, flow.Login)

		if err := a.Press(ActionRegister); err != nil {
			t.Fatalf("press register: %v", err)
		}
		v := a.View()
		if !v.Loading || v.Screen != flow.Login {
			t.Fatalf("expected loading on Login, got %s loading=%v", v.Screen, v.Loading)
		}
		if len(v.Actions) != 0 {
			t.Errorf("expected controls disabled while loading, got %v", v.Actions)
		}

		clock.Advance(3 * time.Second)
		v = a.View()
		if v.Screen != flow.Register || v.Loading {
			t.Errorf("expected Register without loading, got %s loading=%v", v.Screen, v.Loading)
		}
		tu.AssertStack(t, v.Stack, flow.Login, flow.Register)
	})

	t.Run("C: Sign Up without gender reports MissingField", func(t *testing.T) {
		a, _ := at(t, flow.Register)
		before := a.View()

		err := a.Press(ActionSignUp)
		if !errors.Is(err, flow.ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
		v := a.View()
		if v.Dialog == nil || v.Dialog.Message != MissingGenderDialog.Message || v.Dialog.Confirm {
			t.Fatalf("expected missing gender notice, got %+v", v.Dialog)
		}
		if err := a.Press(ActionBack); !errors.Is(err, ErrBlocked) {
			t.Errorf("expected presses blocked by the dialog, got %v", err)
		}

		_ = a.Answer(true)
		v = a.View()
		tu.AssertStack(t, v.Stack, before.Stack...)
		if v.Instance != before.Instance {
			t.Error("expected the same Register page")
		}
	})

	t.Run("D: Sign Up with Male resets to Login after acknowledgment", func(t *testing.T) {
		a, _ := at(t, flow.Register)
		_ = a.Press(ActionMale)
		if a.View().Gender != flow.Male {
			t.Fatalf("expected Male selected, got %s", a.View().Gender)
		}

		if err := a.Press(ActionSignUp); err != nil {
			t.Fatalf("sign up: %v", err)
		}
		v := a.View()
		if v.Dialog == nil || v.Dialog.Title != RegisteredDialog.Title {
			t.Fatalf("expected registration notice, got %+v", v.Dialog)
		}
		tu.AssertStack(t, v.Stack, flow.Login, flow.Register)

		_ = a.Answer(true)
		tu.AssertStack(t, a.View().Stack, flow.Login)
	})

	t.Run("E: resend unlocks after 180 ticks and resets", func(t *testing.T) {
		a, clock := at(t, flow.VerifyOtp)
		v := a.View()
		if v.Countdown == nil || v.Countdown.Remaining != 180 || v.Countdown.ResendEnabled {
			t.Fatalf("expected fresh countdown, got %+v", v.Countdown)
		}
		if err := a.Press(ActionResend); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected resend disabled, got %v", err)
		}

		clock.Advance(180 * time.Second)
		v = a.View()
		if v.Countdown.Remaining != 0 || !v.Countdown.ResendEnabled {
			t.Fatalf("expected resend enabled at 0, got %+v", v.Countdown)
		}
		if !slices.Contains(v.Actions, ActionResend) {
			t.Error("expected Resend among the actions")
		}

		if err := a.Press(ActionResend); err != nil {
			t.Fatalf("resend: %v", err)
		}
		v = a.View()
		if v.Countdown.Remaining != 180 || v.Countdown.ResendEnabled {
			t.Errorf("expected countdown reset, got %+v", v.Countdown)
		}
	})

	t.Run("F: drawer logout yes resets, no closes the drawer", func(t *testing.T) {
		a, clock := at(t, flow.Dashboard)
		_ = a.Press(ActionOpenDrawer)
		if !a.View().Drawer {
			t.Fatal("expected drawer open")
		}

		_ = a.Press(ActionDrawerLogout)
		v := a.View()
		if v.Dialog == nil || !v.Dialog.Confirm || v.Dialog.Title != session.LogoutDialog.Title {
			t.Fatalf("expected logout confirmation, got %+v", v.Dialog)
		}
		_ = a.Answer(false)
		v = a.View()
		if v.Drawer {
			t.Error("expected drawer closed after No")
		}
		tu.AssertStack(t, v.Stack, flow.Login, flow.Dashboard)

		_ = a.Press(ActionOpenDrawer)
		_ = a.Press(ActionDrawerLogout)
		_ = a.Answer(true)
		if !a.View().Loading {
			t.Error("expected loading overlay while signing out")
		}
		clock.Advance(3 * time.Second)
		tu.AssertStack(t, a.View().Stack, flow.Login)
	})
}

func TestTransitions(t *testing.T) {
	t.Run("double press while loading mutates the stack once", func(t *testing.T) {
		a, clock := at(t, flow.Login)

		_ = a.Press(ActionLogin)
		for _, act := range []Action{ActionLogin, ActionRegister, ActionForgot} {
			if err := a.Press(act); !errors.Is(err, flow.ErrBusy) {
				t.Errorf("expected ErrBusy for %s, got %v", act, err)
			}
		}
		clock.Advance(time.Minute)

		tu.AssertStack(t, a.View().Stack, flow.Login, flow.Dashboard)
	})

	t.Run("password recovery ends in a reset to Login", func(t *testing.T) {
		a, clock := at(t, flow.CreatePassword)
		tu.AssertStack(t, a.View().Stack, flow.Login, flow.ForgotPassword, flow.VerifyOtp, flow.CreatePassword)

		_ = a.Press(ActionDone)
		clock.Advance(2 * time.Second)
		v := a.View()
		if v.Dialog == nil || v.Dialog.Title != RecoveryDialog.Title {
			t.Fatalf("expected recovery notice, got %+v", v.Dialog)
		}

		_ = a.Answer(true)
		tu.AssertStack(t, a.View().Stack, flow.Login)
	})

	t.Run("ForgotPassword Back navigates to Login", func(t *testing.T) {
		a, _ := at(t, flow.ForgotPassword)
		_ = a.Press(ActionBack)
		tu.AssertStack(t, a.View().Stack, flow.Login, flow.ForgotPassword, flow.Login)
	})

	t.Run("Register Back navigates to Login", func(t *testing.T) {
		a, _ := at(t, flow.Register)
		_ = a.Press(ActionBack)
		if a.View().Screen != flow.Login {
			t.Errorf("expected Login, got %s", a.View().Screen)
		}
	})

	t.Run("VerifyOtp Back pops and stops the countdown", func(t *testing.T) {
		a, clock := at(t, flow.VerifyOtp)
		clock.Advance(10 * time.Second)

		_ = a.Press(ActionBack)
		tu.AssertStack(t, a.View().Stack, flow.Login, flow.ForgotPassword)
		if clock.Pending() != 0 {
			t.Errorf("expected countdown released, got %d pending", clock.Pending())
		}
	})

	t.Run("submit from VerifyOtp stops the countdown", func(t *testing.T) {
		a, clock := at(t, flow.VerifyOtp)
		_ = a.Press(ActionSubmit)
		clock.Advance(2 * time.Second)

		if a.View().Screen != flow.CreatePassword {
			t.Fatalf("expected CreatePassword, got %s", a.View().Screen)
		}
		if clock.Pending() != 0 {
			t.Errorf("expected no timers left, got %d pending", clock.Pending())
		}
	})

	t.Run("Dashboard item in the drawer is a no-op", func(t *testing.T) {
		a, _ := at(t, flow.Dashboard)
		_ = a.Press(ActionOpenDrawer)
		before := a.View()

		if err := a.Press(ActionDrawerDashboard); err != nil {
			t.Fatalf("select dashboard: %v", err)
		}
		v := a.View()
		tu.AssertStack(t, v.Stack, before.Stack...)
		if v.Instance != before.Instance || v.Screen != flow.Dashboard {
			t.Error("expected to stay on the same Dashboard page")
		}
	})

	t.Run("Dashboard logout button", func(t *testing.T) {
		a, clock := at(t, flow.Dashboard)
		_ = a.Press(ActionLogout)
		_ = a.Answer(true)
		clock.Advance(3 * time.Second)
		tu.AssertStack(t, a.View().Stack, flow.Login)
	})

	t.Run("Home and Profile", func(t *testing.T) {
		a, clock := at(t, flow.Dashboard)
		_ = a.Controller().Navigate(flow.Home)

		_ = a.Press(ActionProfile)
		tu.AssertStack(t, a.View().Stack, flow.Login, flow.Dashboard, flow.Home, flow.Profile)

		_ = a.Press(ActionHome)
		if a.View().Screen != flow.Home {
			t.Fatalf("expected Home, got %s", a.View().Screen)
		}
		_ = a.Press(ActionProfile)

		_ = a.Press(ActionLogout)
		v := a.View()
		if v.Dialog == nil || !v.Dialog.Confirm {
			t.Fatalf("expected logout confirmation, got %+v", v.Dialog)
		}
		_ = a.Answer(true)
		clock.Advance(3 * time.Second)
		tu.AssertStack(t, a.View().Stack, flow.Login)
	})

	t.Run("actions not offered are rejected silently", func(t *testing.T) {
		a, _ := at(t, flow.Login)

		err := a.Press(ActionLogout)
		if !errors.Is(err, ErrUnavailable) || !IsSilent(err) {
			t.Errorf("expected silent ErrUnavailable, got %v", err)
		}
		if err := a.Press(ActionOpenDrawer); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected drawer unavailable on Login, got %v", err)
		}
	})
}

func TestTransientState(t *testing.T) {
	t.Run("fields belong to the page", func(t *testing.T) {
		a, clock := at(t, flow.Login)

		if err := a.SetField("username", "christian"); err != nil {
			t.Fatalf("set field: %v", err)
		}
		if err := a.SetField("email", "x"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected unknown field to be rejected, got %v", err)
		}
		if got, _ := a.View().Field("username"); got != "christian" {
			t.Errorf("expected username christian, got %q", got)
		}

		_ = a.Press(ActionForgot)
		clock.Advance(3 * time.Second)
		_ = a.Press(ActionBack)

		if got, _ := a.View().Field("username"); got != "" {
			t.Errorf("expected a fresh Login form, got %q", got)
		}
	})

	t.Run("show password toggles field secrecy", func(t *testing.T) {
		a, _ := at(t, flow.CreatePassword)
		if !a.View().Fields[0].Secret {
			t.Fatal("expected password hidden by default")
		}

		_ = a.Press(ActionShowPassword)
		v := a.View()
		if v.Fields[0].Secret || !v.Toggles[toggleShowPassword] {
			t.Error("expected password shown")
		}
	})

	t.Run("upload COR shows a notice and keeps the page", func(t *testing.T) {
		a, _ := at(t, flow.Register)
		_ = a.SetField("full_name", "Christian Paasa")
		_ = a.Press(ActionUploadCOR)

		v := a.View()
		if v.Dialog == nil || v.Dialog.Title != UploadDialog.Title {
			t.Fatalf("expected upload notice, got %+v", v.Dialog)
		}
		_ = a.Answer(true)
		if got, _ := a.View().Field("full_name"); got != "Christian Paasa" {
			t.Errorf("expected form kept, got %q", got)
		}
	})
}

func TestRequestFailure(t *testing.T) {
	rejected := errors.New("rejected")
	clock := timer.NewManual()
	a := New(Opts{
		Scheduler: clock,
		Tasks: func(screen flow.Screen, act Action, d time.Duration) timer.Task {
			if act == ActionNext {
				return timer.Fail(clock, d, rejected)
			}
			return timer.Delay(clock, d)
		},
	})
	_ = a.Start()
	defer a.Close()

	clock.Advance(2 * time.Second)
	_ = a.Press(ActionForgot)
	clock.Advance(3 * time.Second)
	_ = a.SetField("email", "christian@example.com")

	_ = a.Press(ActionNext)
	clock.Advance(2 * time.Second)

	v := a.View()
	if v.Screen != flow.ForgotPassword || v.Loading {
		t.Fatalf("expected to stay on ForgotPassword without loading, got %s loading=%v", v.Screen, v.Loading)
	}
	if v.Error == "" {
		t.Error("expected the failure to be reported")
	}
	if got, _ := v.Field("email"); got != "christian@example.com" {
		t.Errorf("expected pre-submit form, got %q", got)
	}
	if !slices.Contains(v.Actions, ActionNext) {
		t.Error("expected Next re-enabled")
	}

	_ = a.Press(ActionBack)
	if a.View().Error != "" {
		t.Error("expected the failure to clear on transition")
	}
}

func TestLogoutFailure(t *testing.T) {
	rejected := errors.New("sign out rejected")
	clock := timer.NewManual()
	var consulted []Action
	a := New(Opts{
		Scheduler: clock,
		Tasks: func(screen flow.Screen, act Action, d time.Duration) timer.Task {
			consulted = append(consulted, act)
			if act == ActionLogout {
				return timer.Fail(clock, d, rejected)
			}
			return timer.Delay(clock, d)
		},
	})
	_ = a.Start()
	defer a.Close()

	clock.Advance(2 * time.Second)
	_ = a.Press(ActionLogin)
	clock.Advance(3 * time.Second)

	if err := a.Press(ActionLogout); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := a.Answer(true); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !a.View().Loading {
		t.Fatal("expected loading while signing out")
	}
	clock.Advance(3 * time.Second)

	if !slices.Contains(consulted, ActionLogout) {
		t.Fatalf("expected the logout task to be requested, got %v", consulted)
	}
	v := a.View()
	tu.AssertStack(t, v.Stack, flow.Login, flow.Dashboard)
	if v.Loading {
		t.Error("expected loading cleared after the failure")
	}
	if !errors.Is(a.failure, flow.ErrRequestFailed) || !errors.Is(a.failure, rejected) {
		t.Errorf("expected wrapped request failure, got %v", a.failure)
	}
	if v.Error == "" {
		t.Error("expected the failure to be reported")
	}
	if !slices.Contains(v.Actions, ActionLogout) {
		t.Error("expected Logout re-enabled")
	}
}

func TestClose(t *testing.T) {
	a, clock := at(t, flow.VerifyOtp)
	a.Close()
	clock.Advance(time.Hour)

	if clock.Pending() != 0 {
		t.Errorf("expected every timer released on close, got %d", clock.Pending())
	}
}

func TestResetAfterClose(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	a := New(Opts{Scheduler: timer.NewManual(), Logger: logger})
	_ = a.Start()
	a.Close()

	a.reset(flow.Login)
	if !strings.Contains(buf.String(), "reset dropped") {
		t.Errorf("expected the dropped reset to be logged, got %q", buf.String())
	}
}
