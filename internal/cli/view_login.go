package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/tentwenty/ticktock/internal/cli/formatter"
	"github.com/tentwenty/ticktock/internal/domain"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	user *domain.User
	err  error
}

// loginView is the entry view shown when no valid session exists.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	email    string
	password string

	submitting bool
	notice     string // transient line above the form, e.g. session expiry
	errText    string
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = v.newForm()
	return v
}

func (v *loginView) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&v.email).
				Validate(validateRequired("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(validateRequired("password")),
		),
	).WithTheme(ticktockHuhTheme()).WithShowHelp(false)
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) submit() tea.Cmd {
	app := v.state.App
	email, password := v.email, v.password
	return func() tea.Msg {
		user, err := app.Auth.Login(context.Background(), email, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = msg.err.Error()
			v.password = ""
			v.form = v.newForm()
			return v, v.form.Init()
		}
		v.state.User = msg.user
		return v, replaceView(newTimesheetListView(v.state))
	}

	if v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.submitting = true
		v.errText = ""
		return v, tea.Batch(cmd, v.submit())
	}

	return v, cmd
}

func (v *loginView) View() string {
	var body string
	if v.notice != "" {
		body += "  " + formatter.StyleYellow.Render(v.notice) + "\n\n"
	}
	if v.errText != "" {
		body += "  " + formatter.StyleRed.Render(v.errText) + "\n\n"
	}
	if v.submitting {
		body += "  " + formatter.Dim("Signing in...")
	} else {
		body += v.form.View()
	}
	return "\n" + formatter.RenderBox("Sign In", body)
}
