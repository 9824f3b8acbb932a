package app

import (
	"os"
	"path/filepath"
	"testing"
)

func validSession() Session {
	return Session{
		User:  AuthUser{ID: 7, Name: "Cadet", Email: "cadet@wartimevessels.org"},
		Token: "tok-123",
	}
}

func TestFileSessionStore_RoundTrip(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())
	if err := store.Save(validSession()); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.Token != "tok-123" || loaded.User.ID != 7 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestFileSessionStore_MalformedPayloadsLoadAsNil(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{not json`},
		{"missing token", `{"user":{"id":7,"name":"Cadet"}}`},
		{"blank token", `{"token":"   ","user":{"id":7}}`},
		{"missing user id", `{"token":"tok","user":{"name":"Cadet"}}`},
		{"empty object", `{}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte(tc.payload), 0o600); err != nil {
				t.Fatal(err)
			}
			store := NewFileSessionStore(dir)
			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load() error = %v, want nil", err)
			}
			if loaded != nil {
				t.Fatalf("Load() = %+v, want nil", loaded)
			}
		})
	}
}

func TestFileSessionStore_LoadAbsentIsNil(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())
	loaded, err := store.Load()
	if err != nil || loaded != nil {
		t.Fatalf("Load() = (%+v, %v), want (nil, nil)", loaded, err)
	}
}

func TestFileSessionStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on empty store: %v", err)
	}
	if err := store.Save(validSession()); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear(): %v", err)
	}
	loaded, _ := store.Load()
	if loaded != nil {
		t.Fatalf("Load() after Clear() = %+v, want nil", loaded)
	}
}

func TestFileSessionStore_SaveOverwrites(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())
	if err := store.Save(validSession()); err != nil {
		t.Fatal(err)
	}
	second := validSession()
	second.Token = "tok-456"
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Token != "tok-456" {
		t.Fatalf("loaded.Token = %q, want tok-456", loaded.Token)
	}
}

func TestSQLiteSessionStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteSessionStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil || loaded != nil {
		t.Fatalf("fresh Load() = (%+v, %v), want (nil, nil)", loaded, err)
	}
	if err := store.Save(validSession()); err != nil {
		t.Fatal(err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.Token != "tok-123" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear(): %v", err)
	}
	loaded, _ = store.Load()
	if loaded != nil {
		t.Fatalf("Load() after Clear() = %+v, want nil", loaded)
	}
}

func TestSQLiteSessionStore_ImportsLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := NewFileSessionStore(dir)
	if err := legacy.Save(validSession()); err != nil {
		t.Fatal(err)
	}

	store, err := NewSQLiteSessionStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.User.ID != 7 {
		t.Fatalf("imported session = %+v", loaded)
	}

	// The legacy blob is consumed by the import.
	fromLegacy, _ := legacy.Load()
	if fromLegacy != nil {
		t.Fatalf("legacy store still holds %+v", fromLegacy)
	}
}
