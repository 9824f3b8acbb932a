package tui

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"seaskills/internal/app"
)

func newTestApplication(t *testing.T) *app.Application {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"meta":{"current_page":1,"last_page":1}}`))
	}))
	t.Cleanup(server.Close)

	cfg := app.DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	cfg.APIBaseURL = server.URL

	application, err := app.NewApplication(cfg)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	return application
}

func TestNextPrevTab_Cycle(t *testing.T) {
	tabs := app.AppTabs()
	for i, tab := range tabs {
		if got := nextTab(tab); got != tabs[(i+1)%len(tabs)] {
			t.Errorf("nextTab(%s) = %s", tab, got)
		}
		if got := prevTab(tab); got != tabs[(i+len(tabs)-1)%len(tabs)] {
			t.Errorf("prevTab(%s) = %s", tab, got)
		}
	}
}

func TestSwitchTab_PublishesRefreshChannel(t *testing.T) {
	application := newTestApplication(t)
	model := NewModel(application)
	model.screen = screenTabs

	var published atomic.Int32
	if _, err := application.Tabs.Subscribe(app.TabNews, func() {
		published.Add(1)
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	next, _ := model.updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	model = next.(Model)
	if model.tab != app.TabNews {
		t.Fatalf("expected news tab, got %s", model.tab)
	}
	if published.Load() != 1 {
		t.Fatalf("expected 1 publish, got %d", published.Load())
	}

	// Re-selecting the active tab must not republish.
	next, _ = model.updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	model = next.(Model)
	if published.Load() != 1 {
		t.Fatalf("active tab republished, got %d", published.Load())
	}

	// The built-in subscription reloads the feed in the background.
	deadline := time.Now().Add(2 * time.Second)
	for application.Feed.Snapshot().Page == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("feed never reloaded after tab switch")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestUpdateKey_QuitFromTabs(t *testing.T) {
	application := newTestApplication(t)
	model := NewModel(application)
	model.screen = screenTabs

	_, cmd := model.updateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected quit message")
	}
}

func TestSessionField_NilSession(t *testing.T) {
	if got := sessionField(nil, func(s *app.Session) string { return s.User.Name }); got != "" {
		t.Fatalf("expected empty field for nil session, got %q", got)
	}
}
