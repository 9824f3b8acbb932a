package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"seaskills/internal/app"
)

type accountModel struct {
	theme   Theme
	version string
	err     string
}

func newAccountModel(theme Theme) accountModel {
	return accountModel{theme: theme, version: Version}
}

func (m accountModel) update(msg tea.Msg, application *app.Application) (accountModel, bool, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false, nil
	}
	if key.String() == "o" {
		if err := application.Auth.Logout(); err != nil {
			m.err = err.Error()
			return m, false, nil
		}
		return m, true, nil
	}
	return m, false, nil
}

func (m accountModel) view(application *app.Application, width int) string {
	session := application.Auth.Session()

	var b strings.Builder
	b.WriteString(m.theme.Headline.Render("My Account"))
	b.WriteString("\n\n")
	b.WriteString(m.row("Name", sessionField(session, func(s *app.Session) string { return s.User.Name })))
	b.WriteString(m.row("Email", sessionField(session, func(s *app.Session) string { return s.User.Email })))
	b.WriteString(m.row("Phone", sessionField(session, func(s *app.Session) string {
		if s.User.Phone == nil {
			return ""
		}
		return *s.User.Phone
	})))
	b.WriteString(m.row("Membership", sessionField(session, func(s *app.Session) string {
		if s.User.MemberType == nil {
			return ""
		}
		return *s.User.MemberType
	})))
	b.WriteString(m.row("Version", m.version))
	b.WriteString("\n")

	b.WriteString(m.theme.Label.Render("Contact Details"))
	b.WriteString("\n")
	b.WriteString(m.theme.Value.Render("signals@wartimevessels.org"))
	b.WriteString("\n")
	b.WriteString(m.theme.Value.Render("https://www.wartimemaritime.org/contact"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Label.Render("Privacy Policy"))
	b.WriteString("\n")
	b.WriteString(m.theme.Value.Render("https://www.wartimemaritime.org/privacy"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Label.Render("Complaints Process"))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Complaints and related policy details are listed in the WVA policy register."))
	b.WriteString("\n")
	b.WriteString(m.theme.Value.Render("https://www.wartimemaritime.org/policies/policy-register"))
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(m.theme.Error.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Button.Render("o to sign out"))
	return b.String()
}

func (m accountModel) row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.theme.Label.Render(label) + " " + m.theme.Value.Render(value) + "\n"
}

func sessionField(session *app.Session, pick func(*app.Session) string) string {
	if session == nil {
		return ""
	}
	return pick(session)
}

func (m accountModel) helpLine() string {
	return "o sign out"
}
