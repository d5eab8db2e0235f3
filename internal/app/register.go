package app

import "github.com/desertthunder/routerdrawer/internal/flow"

var (
	// MissingGenderDialog reports a Sign Up without a gender selection.
	MissingGenderDialog = flow.Dialog{Title: "Error", Message: "Please select your gender."}
	// RegisteredDialog confirms a completed registration.
	RegisteredDialog = flow.Dialog{Title: "Registration", Message: "Account Registration has been completed successfully"}
	// UploadDialog confirms the COR upload.
	UploadDialog = flow.Dialog{Title: "Upload COR", Message: "COR uploaded successfully."}
)

type register struct {
	*flow.Base
	app *App
}

func (p *register) fields() []Field {
	return []Field{
		{Name: "id_number", Label: "ID Number"},
		{Name: "full_name", Label: "Full Name"},
		{Name: "address", Label: "Address"},
		{Name: "email", Label: "Email Address"},
		{Name: "contact", Label: "Contact Number"},
	}
}

func (p *register) actions() []Action {
	return []Action{ActionBack, ActionUploadCOR, ActionMale, ActionFemale, ActionSignUp}
}

func (p *register) press(act Action) error {
	switch act {
	case ActionBack:
		return p.app.ctrl.Navigate(flow.Login)
	case ActionUploadCOR:
		p.State().Toggles[toggleCORUploaded] = true
		p.app.modal.Notify(UploadDialog, nil)
		return nil
	case ActionMale:
		p.State().Gender = flow.Male
		return nil
	case ActionFemale:
		p.State().Gender = flow.Female
		return nil
	case ActionSignUp:
		return p.signUp()
	}
	return ErrUnavailable
}

// signUp only checks that a gender was picked; the other fields are free text.
func (p *register) signUp() error {
	if p.State().Gender == flow.GenderNone {
		p.app.modal.Notify(MissingGenderDialog, nil)
		return flow.ErrMissingField
	}
	p.app.modal.Notify(RegisteredDialog, p.Scope().Guard(func() {
		p.app.reset(flow.Login)
	}))
	return nil
}
