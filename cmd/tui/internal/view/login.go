package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/form"
)

type loginValues struct {
	email    string
	password string
}

// LoggedInMsg is sent once the credentials are accepted.
type LoggedInMsg struct {
	Session *auth.Session
}

type LoginModel struct {
	CommonModel
	svc *auth.Service

	values *loginValues
	form   *huh.Form

	// message is the last sign-in failure shown under the form.
	message string
	pending bool
}

func NewLoginModel(svc *auth.Service) LoginModel {
	m := LoginModel{
		svc:    svc,
		values: &loginValues{},
	}
	m.form = m.newForm()

	return m
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(signInMsg); ok {
		m.pending = false

		if msg.err != nil {
			m.message = fmt.Sprintf("Error: %v", msg.err)
		} else if msg.state.Session != nil {
			session := msg.state.Session
			return m, func() tea.Msg { return LoggedInMsg{Session: session} }
		} else {
			m.message = msg.state.Message
		}

		m.values.password = ""
		m.form = m.newForm()

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.pending {
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.pending = true

	return m, m.signInCmd()
}

func (m LoginModel) View() string {
	content := "Please log in to continue.\n\n" + m.form.View()

	if m.pending {
		content += "\n" + faintStyle.Render("Signing in...")
	}

	if m.message != "" {
		content += "\n" + errorStyle.Render(m.message)
	}

	return lipgloss.NewStyle().Padding(2).Render(panelStyle.Render(content))
}

func (m LoginModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("Enter your email address").
				Value(&m.values.email),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.values.password),
		),
	).WithWidth(45).WithShowHelp(false)
}

type signInMsg struct {
	state auth.SignInState
	err   error
}

func (m LoginModel) signInCmd() tea.Cmd {
	values := form.Values{
		"email":    m.values.email,
		"password": m.values.password,
	}
	prev := m.message

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		state, err := m.svc.Authenticate(ctx, prev, values)

		return signInMsg{state: state, err: err}
	}
}
