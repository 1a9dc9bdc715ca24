// Package session keeps per-client login state between requests. A Session
// is loaded by middleware for every request and travels in the request
// context; the Gate uses it to admit or redirect callers of protected pages.
package session

import (
	"time"

	"github.com/agendabeleza/backend/internal/models"
)

// Session is the server-side state behind one session cookie.
type Session struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id,omitempty"`
	Email     string      `json:"email,omitempty"`
	Name      string      `json:"nome,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	Next      string      `json:"next,omitempty"`
	CreatedAt time.Time   `json:"created_at"`

	// isNew marks a session that has never been saved.
	isNew bool
}

// UserContext is the identity of an authenticated caller.
type UserContext struct {
	UserID int64
	Email  string
	Name   string
	Role   models.Role
}

// IsAdmin reports whether the caller is a salon administrator.
func (u *UserContext) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// IsAuthenticated reports whether a user is logged in on this session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID > 0
}

// User returns the logged-in identity, or false for an anonymous session.
func (s *Session) User() (*UserContext, bool) {
	if !s.IsAuthenticated() {
		return nil, false
	}
	return &UserContext{
		UserID: s.UserID,
		Email:  s.Email,
		Name:   s.Name,
		Role:   s.Role,
	}, true
}

// IsNew reports whether the session has not been persisted yet.
func (s *Session) IsNew() bool {
	return s.isNew
}

// SetUser records a successful login. The pending Next destination is kept
// so that it can be consumed afterwards.
func (s *Session) SetUser(user *models.User) {
	s.UserID = user.ID
	s.Email = user.Email
	s.Name = user.Name
	s.Role = user.Role
}

// Clear drops every value held by the session.
func (s *Session) Clear() {
	s.UserID = 0
	s.Email = ""
	s.Name = ""
	s.Role = models.RoleClient
	s.Next = ""
}
