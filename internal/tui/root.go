// Package tui renders the Wartime Vessels Association member terminal:
// a login gate followed by the Home, Lessons, News and Account tabs.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"seaskills/internal/app"
)

type screen int

const (
	screenBoot screen = iota
	screenLogin
	screenTabs
	screenStory
)

type (
	authReadyMsg struct{}
	loginDoneMsg struct{ err error }
	tickMsg      time.Time
	storyDoneMsg struct {
		story *app.NewsStory
		err   error
	}
)

const pollInterval = 120 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the root bubbletea model. Controllers in internal/app own all
// remote state; the model keeps only cursor and focus state and polls the
// controllers while a fetch is in flight.
type Model struct {
	app    *app.Application
	theme  Theme
	screen screen
	tab    app.AppTab

	login   loginModel
	home    homeModel
	lesson  lessonModel
	news    newsModel
	account accountModel

	story storyModel

	width   int
	height  int
	polling bool
}

func NewModel(application *app.Application) Model {
	theme := NewTheme()

	// Tab activation fans out through the refresh bus so every consumer
	// of a tab's data reloads, not just the visible screen.
	application.Tabs.Subscribe(app.TabHome, func() {
		go application.Status.Load(context.Background(), true)
	})
	application.Tabs.Subscribe(app.TabNews, func() {
		go application.Feed.Refresh(context.Background())
	})
	application.Tabs.Subscribe(app.TabLessons, func() {
		go application.Status.Load(context.Background(), true)
	})

	return Model{
		app:     application,
		theme:   theme,
		screen:  screenBoot,
		tab:     app.TabHome,
		login:   newLoginModel(theme),
		home:    newHomeModel(theme),
		lesson:  newLessonModel(theme),
		news:    newNewsModel(theme),
		account: newAccountModel(theme),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.app.Auth.Start()
		return authReadyMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authReadyMsg:
		if m.app.Auth.State() == app.AuthAuthenticated {
			return m.enterTabs()
		}
		m.screen = screenLogin
		return m, m.login.focusCmd()

	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.err = msg.err.Error()
			return m, nil
		}
		m.login.reset()
		return m.enterTabs()

	case storyDoneMsg:
		m.story.loading = false
		m.story.story = msg.story
		if msg.err != nil {
			m.story.err = msg.err.Error()
		}
		return m, nil

	case tickMsg:
		if m.anyBusy() {
			return m, tickCmd()
		}
		m.polling = false
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateScreen(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		return m.updateLoginKey(msg)
	case screenStory:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			m.screen = screenTabs
			m.story = storyModel{theme: m.theme}
			return m, nil
		}
		return m, nil
	case screenTabs:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1":
			return m.switchTab(app.TabHome)
		case "2":
			return m.switchTab(app.TabLessons)
		case "3":
			return m.switchTab(app.TabNews)
		case "4":
			return m.switchTab(app.TabAccount)
		case "tab":
			return m.switchTab(nextTab(m.tab))
		case "shift+tab":
			return m.switchTab(prevTab(m.tab))
		}
		return m.updateScreen(msg)
	}
	return m, nil
}

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if m.login.submitting {
			return m, nil
		}
		email := strings.TrimSpace(m.login.email.Value())
		password := m.login.password.Value()
		m.login.submitting = true
		m.login.err = ""
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_, err := m.app.Auth.Login(ctx, email, password)
			return loginDoneMsg{err: err}
		}
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == screenLogin {
		m.login, cmd = m.login.update(msg)
		return m, cmd
	}
	switch m.tab {
	case app.TabLessons:
		m.lesson, cmd = m.lesson.update(msg, m.app)
	case app.TabNews:
		var open *app.NewsStory
		m.news, open, cmd = m.news.update(msg, m.app)
		if open != nil {
			return m.openStory(open.Slug)
		}
	case app.TabAccount:
		var signedOut bool
		m.account, signedOut, cmd = m.account.update(msg, m.app)
		if signedOut {
			m.screen = screenLogin
			m.tab = app.TabHome
			return m, m.login.focusCmd()
		}
	}
	if cmd == nil && m.anyBusy() && !m.polling {
		m.polling = true
		cmd = tickCmd()
	}
	return m, cmd
}

func (m Model) enterTabs() (tea.Model, tea.Cmd) {
	m.screen = screenTabs
	m.tab = app.TabHome
	go m.app.Feed.LoadFirstPage(context.Background(), "", false)
	go m.app.Status.Load(context.Background(), false)
	m.polling = true
	return m, tickCmd()
}

func (m Model) switchTab(tab app.AppTab) (tea.Model, tea.Cmd) {
	if tab == m.tab {
		return m, nil
	}
	m.tab = tab
	m.app.Tabs.Publish(tab)
	m.polling = true
	return m, tickCmd()
}

func (m Model) openStory(slug string) (tea.Model, tea.Cmd) {
	m.screen = screenStory
	m.story = storyModel{theme: m.theme, loading: true, slug: slug, siteBase: m.app.Config.SiteBaseURL}
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		story, err := m.app.Client.FetchNewsStoryBySlug(ctx, slug)
		return storyDoneMsg{story: story, err: err}
	}
}

func (m Model) anyBusy() bool {
	feed := m.app.Feed.Snapshot()
	status := m.app.Status.Snapshot()
	return feed.Loading || feed.Refreshing || feed.LoadingMore || status.Loading || status.Refreshing
}

func (m Model) View() string {
	switch m.screen {
	case screenBoot:
		return m.theme.Muted.Render("Opening the chronicle...")
	case screenLogin:
		return m.login.view(m.width)
	case screenStory:
		return m.story.view(m.width)
	}

	var b strings.Builder
	b.WriteString(m.theme.Masthead.Render("WVA CHRONICLE"))
	b.WriteString("  ")
	b.WriteString(m.theme.Subheadline.Render("Wartime Vessels Association"))
	b.WriteString("\n\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch m.tab {
	case app.TabHome:
		b.WriteString(m.home.view(m.app, m.width))
	case app.TabLessons:
		b.WriteString(m.lesson.view(m.app, m.width))
	case app.TabNews:
		b.WriteString(m.news.view(m.app, m.width))
	case app.TabAccount:
		b.WriteString(m.account.view(m.app, m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.HelpBar.Render(m.helpLine()))
	return b.String()
}

func (m Model) tabBar() string {
	labels := map[app.AppTab]string{
		app.TabHome:    "1 Home",
		app.TabLessons: "2 Lessons",
		app.TabNews:    "3 News",
		app.TabAccount: "4 Account",
	}
	parts := make([]string, 0, 4)
	for _, tab := range app.AppTabs() {
		style := m.theme.Tab
		if tab == m.tab {
			style = m.theme.TabActive
		}
		parts = append(parts, style.Render(labels[tab]))
	}
	return m.theme.TabBar.Render(strings.Join(parts, " "))
}

func (m Model) helpLine() string {
	common := "1-4/tab switch tab • q quit"
	switch m.tab {
	case app.TabLessons:
		return fmt.Sprintf("%s • %s", m.lesson.helpLine(), common)
	case app.TabNews:
		return fmt.Sprintf("%s • %s", m.news.helpLine(), common)
	case app.TabAccount:
		return fmt.Sprintf("%s • %s", m.account.helpLine(), common)
	}
	return common
}

func nextTab(tab app.AppTab) app.AppTab {
	tabs := app.AppTabs()
	for i, t := range tabs {
		if t == tab {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return tabs[0]
}

func prevTab(tab app.AppTab) app.AppTab {
	tabs := app.AppTabs()
	for i, t := range tabs {
		if t == tab {
			return tabs[(i+len(tabs)-1)%len(tabs)]
		}
	}
	return tabs[0]
}
