package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func sessionFunc(sess *Session) func() *Session {
	return func() *Session { return sess }
}

func TestStatusController_AggregateScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"user": {"id":7,"name":"Cadet","email":"c@w.org"},
			"activities": [
				{"activity_id":1,"week_number":1,"code":"rnps","title":"RNPS","status":"finished","minutes_spent":30},
				{"activity_id":2,"week_number":2,"code":"dynamo","title":"Dynamo","status":"pending","minutes_spent":null}
			]
		}`))
	}))
	defer server.Close()

	sess := validSession()
	status := NewStatusController(NewAPIClient(server.URL), sessionFunc(&sess))
	status.Load(context.Background(), false)

	snap := status.Snapshot()
	if snap.Err != "" {
		t.Fatalf("Err = %q", snap.Err)
	}
	if len(snap.Activities) != 2 {
		t.Fatalf("len(activities) = %d, want 2", len(snap.Activities))
	}
	totals := status.Totals()
	if totals.Finished != 1 || totals.Pending != 1 || totals.Minutes != 30 {
		t.Fatalf("totals = %+v, want {Finished:1 Pending:1 Minutes:30}", totals)
	}
}

func TestStatusController_NoSessionSkipsNetwork(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	status := NewStatusController(NewAPIClient(server.URL), sessionFunc(nil))
	status.Load(context.Background(), false)

	if requests.Load() != 0 {
		t.Fatal("no network call expected without a session")
	}
	snap := status.Snapshot()
	if snap.Err != "No active session. Please sign in again." {
		t.Fatalf("Err = %q", snap.Err)
	}
	if snap.Loading || snap.Refreshing {
		t.Fatalf("loading flags stuck: %+v", snap)
	}
}

func TestStatusController_RetryAfterError(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"maintenance window"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":7},"activities":[{"activity_id":1,"status":"finished"}]}`))
	}))
	defer server.Close()

	sess := validSession()
	status := NewStatusController(NewAPIClient(server.URL), sessionFunc(&sess))

	status.Load(context.Background(), false)
	if snap := status.Snapshot(); snap.Err != "maintenance window" {
		t.Fatalf("Err = %q, want server message", snap.Err)
	}

	fail.Store(false)
	status.Load(context.Background(), false)
	snap := status.Snapshot()
	if snap.Err != "" {
		t.Fatalf("Err after retry = %q, want cleared", snap.Err)
	}
	if len(snap.Activities) != 1 {
		t.Fatalf("len(activities) = %d, want 1", len(snap.Activities))
	}
}

func TestStatusController_RefreshReplacesList(t *testing.T) {
	var second atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if second.Load() {
			_, _ = w.Write([]byte(`{"user":{"id":7},"activities":[{"activity_id":9,"status":"finished"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":7},"activities":[{"activity_id":1,"status":"pending"},{"activity_id":2,"status":"pending"}]}`))
	}))
	defer server.Close()

	sess := validSession()
	status := NewStatusController(NewAPIClient(server.URL), sessionFunc(&sess))
	status.Load(context.Background(), false)
	if got := len(status.Snapshot().Activities); got != 2 {
		t.Fatalf("precondition: %d activities, want 2", got)
	}

	second.Store(true)
	status.Load(context.Background(), true)
	snap := status.Snapshot()
	if len(snap.Activities) != 1 || snap.Activities[0].ActivityID != 9 {
		t.Fatalf("refresh did not replace the list: %+v", snap.Activities)
	}
}
