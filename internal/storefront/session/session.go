// Package session models the signed-in shopper and delivers identity
// transitions to the components that partition their state by email.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrSignInRequired is returned when an operation needs an authenticated
// identity and none is present.
var ErrSignInRequired = errors.New("sign in required")

// Session is what an identity provider hands the storefront. Only Email is
// used as the identity key.
type Session struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Authenticated reports whether s carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.Email) != ""
}

// Key returns the identity key, or "" for an anonymous session.
func (s *Session) Key() string {
	if !s.Authenticated() {
		return ""
	}
	return s.Email
}

// NormalizeEmail is the canonical form of an identity key. The backend
// stores users the same way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Listener is invoked on every identity change. current is nil after sign out.
type Listener func(ctx context.Context, current *Session)

// Manager holds the current session. Listeners only hear about identity
// changes, so re-delivering the same session does not trigger them.
type Manager struct {
	mu        sync.Mutex
	current   *Session
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

// OnChange registers a listener. Listeners run synchronously in the order
// they were registered.
func (m *Manager) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Current returns a copy of the current session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// SignIn replaces the current session. Returns false when the identity did
// not change and no listener was notified.
func (m *Manager) SignIn(ctx context.Context, s Session) bool {
	if !s.Authenticated() {
		return m.SignOut(ctx)
	}

	s.Email = NormalizeEmail(s.Email)

	m.mu.Lock()
	changed := m.current.Key() != s.Key()
	cp := s
	m.current = &cp
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if !changed {
		return false
	}
	for _, fn := range listeners {
		fn(ctx, &cp)
	}
	return true
}

// SignOut clears the session. Returns false if nobody was signed in.
func (m *Manager) SignOut(ctx context.Context) bool {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return false
	}
	m.current = nil
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, nil)
	}
	return true
}
