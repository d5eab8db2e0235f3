// Package ui renders the router-and-drawer shell in the terminal using bubbletea's Elm architecture.
//
// The [Model] is a thin renderer over [app.App]: every keypress becomes a field edit, a press or a dialog
// answer, and after each message the model re-reads an [app.View] snapshot. Screens map one to one:
//  1. Splash : title card, replaced by Login after the splash delay
//  2. Login, Register, ForgotPassword, VerifyOtp, CreatePassword : forms with buttons
//  3. Dashboard : profile card with a side drawer (Dashboard / Logout)
//  4. Home, Profile : product browser and profile page
//
// Timers come from a [timer.Loop]. Their callbacks arrive on a channel and are run inside Update, the same way
// the loop delivers key presses, so the app state is only touched from the bubbletea goroutine.
//
// Focus moves across form fields and buttons with tab/shift+tab; enter presses the focused button, esc goes
// back where the screen offers it. Dialogs take y/n or enter/esc.
package ui
