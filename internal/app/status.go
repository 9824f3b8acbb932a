package app

import (
	"context"
	"sync"
)

const errNoActiveSession = "No active session. Please sign in again."

// StatusSnapshot is a copy of the lesson status state for rendering.
type StatusSnapshot struct {
	Activities []SeaSkillsActivity
	Loading    bool
	Refreshing bool
	Err        string
}

// StatusController is the single-shot fetch-and-render state machine for
// per-user activity records. Retry and manual refresh both re-run Load.
type StatusController struct {
	client  *APIClient
	session func() *Session

	mu         sync.Mutex
	gen        uint64
	activities []SeaSkillsActivity
	loading    bool
	refreshing bool
	err        string
}

// NewStatusController takes a session accessor rather than a fixed session
// so reloads always see the current sign-in.
func NewStatusController(client *APIClient, session func() *Session) *StatusController {
	return &StatusController{client: client, session: session, loading: true}
}

func (s *StatusController) Snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	activities := make([]SeaSkillsActivity, len(s.activities))
	copy(activities, s.activities)
	return StatusSnapshot{
		Activities: activities,
		Loading:    s.loading,
		Refreshing: s.refreshing,
		Err:        s.err,
	}
}

// Load fetches the activity list, replacing it wholesale. Without both a
// user id and a token it reports the no-session error immediately, with no
// network call.
func (s *StatusController) Load(ctx context.Context, asRefresh bool) {
	sess := s.session()
	if !sess.Valid() {
		s.mu.Lock()
		s.err = errNoActiveSession
		s.loading = false
		s.refreshing = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if asRefresh {
		s.refreshing = true
	} else {
		s.loading = true
	}
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.gen {
			s.loading = false
			s.refreshing = false
		}
		s.mu.Unlock()
	}()

	resp, err := s.client.FetchSeaSkillsStatus(ctx, sess.User.ID, sess.Token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	if err != nil {
		s.err = errMessage(err, "Unable to load lesson status.")
		return
	}
	s.activities = resp.Activities
}

// Totals aggregates over the current in-memory list.
func (s *StatusController) Totals() ActivityTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SummarizeActivities(s.activities)
}
