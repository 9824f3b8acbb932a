package app

// SessionStore persists the single authenticated session. Load degrades to
// (nil, nil) for absent, malformed, or invalid payloads: a broken blob must
// never take the whole client down. Save propagates I/O errors. Clear is
// idempotent.
type SessionStore interface {
	Save(sess Session) error
	Load() (*Session, error)
	Clear() error
}
