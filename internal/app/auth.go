package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// AuthState is the controller's lifecycle: Loading until the stored session
// has been checked, then Authenticated or Unauthenticated.
type AuthState int

const (
	AuthLoading AuthState = iota
	AuthAuthenticated
	AuthUnauthenticated
)

var ErrMissingCredentials = errors.New("Please enter email and password.")

// AuthController owns the in-memory session, mirroring whatever the store
// holds. Login persists before it reports success; push registration is
// fire-and-forget and never joins the caller's error path.
type AuthController struct {
	client *APIClient
	store  SessionStore
	push   PushTokenProvider
	logger *Logger

	mu      sync.Mutex
	state   AuthState
	session *Session

	// pushDone is signalled by tests to wait for the background
	// registration goroutine.
	pushDone chan struct{}
}

func NewAuthController(client *APIClient, store SessionStore, push PushTokenProvider, logger *Logger) *AuthController {
	return &AuthController{
		client: client,
		store:  store,
		push:   push,
		logger: logger,
		state:  AuthLoading,
	}
}

// Start checks the store for a persisted session. Store read errors count as
// no session: the user just signs in again.
func (a *AuthController) Start() {
	sess, err := a.store.Load()
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil || !sess.Valid() {
		if err != nil {
			a.logger.Error("session load failed", map[string]interface{}{"error": err.Error()})
		}
		a.state = AuthUnauthenticated
		a.session = nil
		return
	}
	a.state = AuthAuthenticated
	a.session = sess
}

func (a *AuthController) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *AuthController) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil && strings.TrimSpace(a.session.Token) != ""
}

// Session returns a copy of the current session, or nil when signed out.
func (a *AuthController) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	sess := *a.session
	return &sess
}

// Login validates inputs locally, exchanges them for a session, persists it,
// and kicks off best-effort push-token registration. Registration failures
// are logged and swallowed; they must never block sign-in.
func (a *AuthController) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(*sess); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.state = AuthAuthenticated
	a.session = sess
	done := make(chan struct{})
	a.pushDone = done
	a.mu.Unlock()

	go func() {
		defer close(done)
		pushCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := registerPushToken(pushCtx, a.client, a.push, sess.Token); err != nil {
			a.logger.Error("push token registration failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	result := *sess
	return &result, nil
}

// Logout clears the store and drops the in-memory session. In-flight
// requests holding the old token are not cancelled; screens navigate away on
// their own.
func (a *AuthController) Logout() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.mu.Lock()
	a.state = AuthUnauthenticated
	a.session = nil
	a.mu.Unlock()
	return nil
}

// waitForPush blocks until the last login's push registration goroutine has
// finished. Test helper.
func (a *AuthController) waitForPush() {
	a.mu.Lock()
	done := a.pushDone
	a.mu.Unlock()
	if done != nil {
		<-done
	}
}
