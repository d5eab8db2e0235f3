package app

import "github.com/desertthunder/routerdrawer/internal/flow"

// Modal is a [flow.Prompter] that parks one dialog until [Modal.Resolve] is called by the UI.
type Modal struct {
	pending *pendingDialog
}

type pendingDialog struct {
	dialog  flow.Dialog
	confirm bool
	answer  func(bool)
}

var _ flow.Prompter = (*Modal)(nil)

func (m *Modal) Confirm(d flow.Dialog, answer func(bool)) {
	m.pending = &pendingDialog{dialog: d, confirm: true, answer: answer}
}

func (m *Modal) Notify(d flow.Dialog, ack func()) {
	m.pending = &pendingDialog{dialog: d, answer: func(bool) {
		if ack != nil {
			ack()
		}
	}}
}

// Pending returns the waiting dialog and whether it asks Yes/No.
func (m *Modal) Pending() (d flow.Dialog, confirm, ok bool) {
	if m.pending == nil {
		return flow.Dialog{}, false, false
	}
	return m.pending.dialog, m.pending.confirm, true
}

// Resolve closes the dialog. For acknowledgments the answer is ignored.
func (m *Modal) Resolve(yes bool) error {
	p := m.pending
	if p == nil {
		return ErrNoDialog
	}
	m.pending = nil
	p.answer(yes)
	return nil
}

// Dismiss drops the dialog without answering it.
func (m *Modal) Dismiss() {
	m.pending = nil
}
