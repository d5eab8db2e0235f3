// Package flow owns the navigation stack and the screen lifecycle.
//
// A [Controller] is created once per app session. It starts with the stack [Splash] and exposes the four
// navigation operations: [Controller.Navigate], [Controller.GoBack], [Controller.Reset] and the drawer toggles.
// Screens never touch the stack directly; they ask the controller.
//
// # Pages
//
// Only the screen on top of the stack has a live [Page]. Moving away from a screen (forward, back or reset)
// closes its [Scope], which cancels every timer and task the page acquired, and discards its [State].
// Returning to a screen mounts a fresh page.
//
// # Simulated latency
//
// [Base.Await] is the one place a page waits on an asynchronous operation: it raises the loading flag, ignores
// further submits until the task settles, then runs the navigation step. The task is a [timer.Task], so the
// fixed delay used today can be swapped for a real request without touching the transitions.
package flow
