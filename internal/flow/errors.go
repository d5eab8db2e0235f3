package flow

import "errors"

var (
	// ErrMissingField is returned when a required selection is absent at submit time.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidNavigation covers popping the last stack entry and toggling the drawer outside Dashboard.
	ErrInvalidNavigation = errors.New("invalid navigation")
	// ErrBusy is returned when a page already has a timed transition in flight.
	ErrBusy = errors.New("transition already in flight")
	// ErrRequestFailed wraps the error of a task that settled unsuccessfully.
	ErrRequestFailed = errors.New("request failed")
)

// IsSilent reports whether err is a local no-op that must not be shown to the user.
func IsSilent(err error) bool {
	return errors.Is(err, ErrInvalidNavigation) || errors.Is(err, ErrBusy)
}
