package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSessionStore keeps the session blob in a single-row kv table. The
// legacy JSON file is imported once on first open so upgrades keep users
// signed in.
type SQLiteSessionStore struct {
	Root   string
	dbPath string

	mu   sync.Mutex
	db   *sql.DB
	once sync.Once
	err  error

	// Used only for legacy import.
	legacy *FileSessionStore
}

const sessionKey = "wva_auth_session"

func NewSQLiteSessionStore(root string) (*SQLiteSessionStore, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	st := &SQLiteSessionStore{
		Root:   root,
		dbPath: filepath.Join(root, "wva.db"),
		legacy: NewFileSessionStore(root),
	}
	// Initialize eagerly so callers fail fast.
	if err := st.init(); err != nil {
		return nil, err
	}
	// One-time best-effort import.
	_ = st.importLegacyIfNeeded()
	return st, nil
}

func (s *SQLiteSessionStore) init() error {
	s.once.Do(func() {
		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			s.err = err
			return
		}
		// Keep sqlite responsive under contention.
		_, _ = db.Exec("PRAGMA busy_timeout = 5000;")
		_, _ = db.Exec("PRAGMA journal_mode = WAL;")

		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at_ns INTEGER NOT NULL
		);`); err != nil {
			_ = db.Close()
			s.err = err
			return
		}
		s.db = db
	})
	return s.err
}

func (s *SQLiteSessionStore) dbConn() (*sql.DB, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return nil, errors.New("sqlite store unavailable")
	}
	return db, nil
}

func (s *SQLiteSessionStore) importLegacyIfNeeded() error {
	db, err := s.dbConn()
	if err != nil {
		return err
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key = ?`, sessionKey).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	sess, err := s.legacy.Load()
	if err != nil || sess == nil {
		return err
	}
	if err := s.Save(*sess); err != nil {
		return err
	}
	return s.legacy.Clear()
}

func (s *SQLiteSessionStore) Save(sess Session) error {
	db, err := s.dbConn()
	if err != nil {
		return err
	}
	b, err := json.Marshal(&sess)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO kv(key, value, updated_at_ns) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at_ns = excluded.updated_at_ns`,
		sessionKey, string(b), time.Now().UnixNano())
	return err
}

func (s *SQLiteSessionStore) Load() (*Session, error) {
	db, err := s.dbConn()
	if err != nil {
		return nil, err
	}
	var raw string
	err = db.QueryRow(`SELECT value FROM kv WHERE key = ?`, sessionKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, nil
	}
	if !sess.Valid() {
		return nil, nil
	}
	return &sess, nil
}

func (s *SQLiteSessionStore) Clear() error {
	db, err := s.dbConn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`DELETE FROM kv WHERE key = ?`, sessionKey)
	return err
}
