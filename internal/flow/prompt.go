package flow

// Dialog is the content of a modal prompt.
type Dialog struct {
	Title   string
	Message string
}

// Prompter shows blocking dialogs. Confirm offers Yes/No; Notify offers a single acknowledgment.
type Prompter interface {
	Confirm(d Dialog, answer func(yes bool))
	Notify(d Dialog, ack func())
}
