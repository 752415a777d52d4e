// Package session holds the signed-in user for the lifetime of the page.
package session

import (
	"sync"

	"github.com/bine130/pe-subnote/internal/model"
)

// Keys under which the token and cached profile live in browser local
// storage, shared by the student app and the admin console.
const (
	StorageTokenKey = "subnote.token"
	StorageUserKey  = "subnote.user"
)

// Session is the authenticated state for the current browser tab. Reads
// come from the render goroutine, writes from async login flows.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *model.User
}

// Install records a fresh token and profile after login.
func (s *Session) Install(token string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	u := user
	s.user = &u
}

// Clear drops the session on logout or a rejected token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or false when logged out.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// SignedIn reports whether a token is installed.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin reports whether the signed-in user holds the admin role.
func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == model.RoleAdmin
}

// IsApproved reports whether the user may access content. Admins are
// implicitly approved.
func (s *Session) IsApproved() bool {
	u, ok := s.User()
	return ok && (u.ApprovalStatus == model.ApprovalApproved || u.Role == model.RoleAdmin)
}
