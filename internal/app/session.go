package app

import "strings"

// AuthUser is the account identity returned by the login endpoint.
type AuthUser struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	MemberType *string `json:"member_type"`
}

// Session pairs an authenticated user with its bearer token. It is the only
// value persisted by the session stores.
type Session struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}

// Valid reports whether the session can be trusted. A stored payload that
// fails this check is treated as if no session existed.
func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	return strings.TrimSpace(s.Token) != "" && s.User.ID > 0
}
