package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/routerdrawer/internal/app"
	"github.com/desertthunder/routerdrawer/internal/flow"
	"github.com/desertthunder/routerdrawer/internal/timer"
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	app      *app.App
	loop     *timer.Loop
	view     app.View
	instance uint64
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
}

// NewModel creates a new TUI model over a started [app.App]. loop may be nil when timers are driven elsewhere.
func NewModel(ctx context.Context, a *app.App, loop *timer.Loop) *Model {
	m := &Model{
		ctx:     ctx,
		app:     a,
		loop:    loop,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.sync()
	return m
}

// Init starts listening for timer callbacks and animates the loading spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForTimer(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgTimerFired:
			if fn, ok := msg.data.(func()); ok {
				fn()
			}
			m.sync()
			return m, m.waitForTimer()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		cmd := m.handleKeys(msg)
		m.sync()
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if m.view.Dialog != nil {
		return m.handleDialogKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.next):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.prev):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, m.keys.back):
		m.pressFirst(app.ActionBack, app.ActionCloseDrawer)
		return nil
	case key.Matches(msg, m.keys.enter):
		if act, ok := m.focusedAction(); ok {
			_ = m.app.Press(act)
		} else {
			m.moveFocus(1)
		}
		return nil
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		_ = m.app.SetField(m.view.Fields[m.focus].Name, m.inputs[m.focus].Value())
		return cmd
	}
	return nil
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.yes):
		_ = m.app.Answer(true)
	case key.Matches(msg, m.keys.no):
		_ = m.app.Answer(false)
	}
	return nil
}

// pressFirst presses the first of acts the screen currently offers.
func (m *Model) pressFirst(acts ...app.Action) {
	for _, act := range acts {
		for _, offered := range m.view.Actions {
			if offered == act {
				_ = m.app.Press(act)
				return
			}
		}
	}
}

func (m *Model) focusables() int {
	return len(m.inputs) + len(m.view.Actions)
}

func (m *Model) focusedAction() (app.Action, bool) {
	i := m.focus - len(m.inputs)
	if i < 0 || i >= len(m.view.Actions) {
		return 0, false
	}
	return m.view.Actions[i], true
}

func (m *Model) moveFocus(delta int) {
	n := m.focusables()
	if n == 0 {
		m.focus = 0
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// sync re-reads the app snapshot, rebuilding the form whenever a new page was mounted.
func (m *Model) sync() {
	m.view = m.app.View()

	if m.view.Instance != m.instance || len(m.inputs) != len(m.view.Fields) {
		m.instance = m.view.Instance
		m.inputs = make([]textinput.Model, len(m.view.Fields))
		for i, f := range m.view.Fields {
			in := textinput.New()
			in.Placeholder = f.Label
			in.SetValue(f.Value)
			m.inputs[i] = in
		}
		m.focus = 0
	}

	for i, f := range m.view.Fields {
		if f.Secret {
			m.inputs[i].EchoMode = textinput.EchoPassword
		} else {
			m.inputs[i].EchoMode = textinput.EchoNormal
		}
	}

	if n := m.focusables(); m.focus >= n {
		m.focus = max(n-1, 0)
	}
	m.applyFocus()
}

// waitForTimer blocks until the loop delivers a due callback.
func (m *Model) waitForTimer() tea.Cmd {
	if m.loop == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case fn := <-m.loop.C():
			return timerFiredMsg(fn)
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

// View renders the UI based on the current screen.
func (m *Model) View() string {
	var b strings.Builder

	title, subtitle := heading(m.view.Screen)
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(styles.subtitle.Render(subtitle))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderBody())

	if m.view.Error != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(m.view.Error))
		b.WriteString("\n")
	}

	body := b.String()
	if m.view.Drawer {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderDrawer(), "  ", body)
	}
	if m.view.Dialog != nil {
		body = fmt.Sprintf("%s\n\n%s", body, m.renderDialog())
	}

	return fmt.Sprintf("%s\n\n%s", body, m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderBody() string {
	var b strings.Builder

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	switch m.view.Screen {
	case flow.Register:
		fmt.Fprintf(&b, "Gender: %s\n", m.view.Gender)
		if m.view.Toggles["cor_uploaded"] {
			b.WriteString(styles.ok.Render("COR uploaded"))
			b.WriteString("\n")
		}
	case flow.VerifyOtp:
		if c := m.view.Countdown; c != nil {
			if c.ResendEnabled {
				b.WriteString(styles.ok.Render("You can request a new code"))
			} else {
				b.WriteString(fmt.Sprintf("%ds", c.Remaining))
			}
			b.WriteString("\n")
		}
	case flow.Dashboard:
		b.WriteString("Christian Paasa\n")
	case flow.Home:
		for i := 1; i <= 3; i++ {
			fmt.Fprintf(&b, "Product %d  ₱%d\n", i, i*100)
		}
	case flow.Profile:
		b.WriteString("View Profile · Edit Profile · Settings\n")
	}

	if m.view.Loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.renderActions())
	return b.String()
}

func (m *Model) renderActions() string {
	if m.view.Drawer {
		return ""
	}
	buttons := make([]string, 0, len(m.view.Actions))
	for i, act := range m.view.Actions {
		style := styles.button
		if m.focus == len(m.inputs)+i {
			style = styles.focused
		}
		buttons = append(buttons, style.Render(act.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(buttons, " "))
}

func (m *Model) renderDrawer() string {
	lines := make([]string, 0, len(m.view.Actions))
	for i, act := range m.view.Actions {
		label := act.Label()
		if m.focus == len(m.inputs)+i {
			label = styles.focused.Render(label)
		}
		lines = append(lines, label)
	}
	return styles.panel.Render(strings.Join(lines, "\n\n"))
}

func (m *Model) renderDialog() string {
	d := m.view.Dialog
	hint := "enter: OK"
	if d.Confirm {
		hint = "y: Yes   n: No"
	}
	content := fmt.Sprintf("%s\n\n%s\n\n%s", styles.title.Render(d.Title), d.Message, styles.help.Render(hint))
	return styles.dialog.Render(content)
}

func heading(s flow.Screen) (title, subtitle string) {
	switch s {
	case flow.Splash:
		return "ROUTER\nAND\nDRAWER", "Christian Paasa"
	case flow.Login:
		return "ROUTER AND DRAWER", "Router and Drawer Application"
	case flow.Register:
		return "Registration Form", "Please fill in the details below:"
	case flow.ForgotPassword:
		return "Account Recovery", "Enter the email address linked to your account"
	case flow.VerifyOtp:
		return "Account Recovery", "Enter the code sent to your email"
	case flow.CreatePassword:
		return "Account Recovery", "Create new password"
	case flow.Dashboard:
		return "My Profile", ""
	case flow.Home:
		return "Featured", "Browse Products here..."
	case flow.Profile:
		return "Billie Eilish", ""
	}
	return s.String(), ""
}
