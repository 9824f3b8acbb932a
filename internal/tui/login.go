package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginModel struct {
	theme      Theme
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	err        string
}

func newLoginModel(theme Theme) loginModel {
	email := textinput.New()
	email.Placeholder = "member email"
	email.CharLimit = 120
	email.Width = 38

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 38

	return loginModel{theme: theme, email: email, password: password}
}

func (m loginModel) focusCmd() tea.Cmd {
	return m.email.Focus()
}

func (m *loginModel) reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.email.Blur()
	m.password.Blur()
	m.focus = 0
	m.err = ""
	m.submitting = false
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m loginModel) view(width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Masthead.Render("WVA CHRONICLE"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subheadline.Render("Members' edition. Sign in to continue."))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(m.theme.Muted.Render("Signing in..."))
	} else {
		b.WriteString(m.theme.Button.Render("enter to sign in"))
	}
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Error.Render(m.err))
	}
	b.WriteString("\n\n")
	b.WriteString(m.theme.HelpBar.Render("tab switch field • ctrl+c quit"))
	return b.String()
}
