package app

import (
	"errors"

	"github.com/desertthunder/routerdrawer/internal/flow"
)

var (
	// ErrUnavailable is returned for actions or fields the current screen does not offer right now.
	ErrUnavailable = errors.New("not available on this screen")
	// ErrBlocked is returned while a dialog waits for an answer.
	ErrBlocked = errors.New("dialog open")
	// ErrNoDialog is returned by [App.Answer] when nothing is pending.
	ErrNoDialog = errors.New("no dialog open")
)

// IsSilent reports whether err is a no-op the user should never see.
func IsSilent(err error) bool {
	return flow.IsSilent(err) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrBlocked)
}
