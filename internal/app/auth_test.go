package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type staticTokenProvider struct {
	token string
	err   error
}

func (p staticTokenProvider) DeviceToken() (string, error) { return p.token, p.err }

func newLoginServer(t *testing.T, pushCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/login":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"token": "tok-123",
				"user":  map[string]interface{}{"id": 7, "name": "Cadet", "email": "c@w.org"},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/expo-token":
			if pushCalls != nil {
				pushCalls.Add(1)
			}
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
}

func newAuth(server *httptest.Server, store SessionStore, push PushTokenProvider) *AuthController {
	return NewAuthController(NewAPIClient(server.URL), store, push, NewLogger(io.Discard))
}

func TestAuthController_LoginPersistsAndRegistersPush(t *testing.T) {
	var pushCalls atomic.Int64
	server := newLoginServer(t, &pushCalls)
	defer server.Close()

	store := NewFileSessionStore(t.TempDir())
	auth := newAuth(server, store, staticTokenProvider{token: "device-1"})

	sess, err := auth.Login(context.Background(), "c@w.org", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token != "tok-123" || sess.User.ID != 7 {
		t.Fatalf("session = %+v", sess)
	}
	if !auth.IsAuthenticated() {
		t.Fatal("expected authenticated state")
	}

	stored, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.Token != "tok-123" {
		t.Fatalf("stored session = %+v", stored)
	}

	auth.waitForPush()
	if got := pushCalls.Load(); got != 1 {
		t.Fatalf("push registrations = %d, want 1", got)
	}
}

func TestAuthController_PushFailureDoesNotBlockLogin(t *testing.T) {
	server := newLoginServer(t, nil)
	defer server.Close()

	store := NewFileSessionStore(t.TempDir())
	auth := newAuth(server, store, staticTokenProvider{err: errors.New("no device")})

	if _, err := auth.Login(context.Background(), "c@w.org", "pw"); err != nil {
		t.Fatalf("Login() = %v, want nil despite push failure", err)
	}
	auth.waitForPush()
	if !auth.IsAuthenticated() {
		t.Fatal("expected authenticated state")
	}
}

func TestAuthController_EmptyCredentialsRejectedLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	defer server.Close()

	auth := newAuth(server, NewFileSessionStore(t.TempDir()), nil)
	if _, err := auth.Login(context.Background(), "   ", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	if _, err := auth.Login(context.Background(), "c@w.org", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestAuthController_StartWithStoredSession(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())
	if err := store.Save(validSession()); err != nil {
		t.Fatal(err)
	}
	auth := NewAuthController(NewAPIClient("http://invalid.local"), store, nil, NewLogger(io.Discard))
	if auth.State() != AuthLoading {
		t.Fatalf("state before Start = %v, want AuthLoading", auth.State())
	}
	auth.Start()
	if auth.State() != AuthAuthenticated {
		t.Fatalf("state = %v, want AuthAuthenticated", auth.State())
	}
	if sess := auth.Session(); sess == nil || sess.User.ID != 7 {
		t.Fatalf("session = %+v", auth.Session())
	}
}

func TestAuthController_StartWithoutSession(t *testing.T) {
	auth := NewAuthController(NewAPIClient("http://invalid.local"), NewFileSessionStore(t.TempDir()), nil, NewLogger(io.Discard))
	auth.Start()
	if auth.State() != AuthUnauthenticated {
		t.Fatalf("state = %v, want AuthUnauthenticated", auth.State())
	}
	if auth.IsAuthenticated() {
		t.Fatal("expected unauthenticated")
	}
}

func TestAuthController_LogoutClearsStore(t *testing.T) {
	server := newLoginServer(t, nil)
	defer server.Close()

	store := NewFileSessionStore(t.TempDir())
	auth := newAuth(server, store, nil)
	if _, err := auth.Login(context.Background(), "c@w.org", "pw"); err != nil {
		t.Fatal(err)
	}
	auth.waitForPush()

	if err := auth.Logout(); err != nil {
		t.Fatal(err)
	}
	if auth.IsAuthenticated() {
		t.Fatal("expected unauthenticated after logout")
	}
	stored, _ := store.Load()
	if stored != nil {
		t.Fatalf("stored session after logout = %+v", stored)
	}
}
