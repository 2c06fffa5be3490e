// Package session gates mutating operations behind an admin login.
//
// A Session moves between Anonymous and Authenticated. Login verifies the
// credential against the store and hands out a new Authenticated session
// keyed by a signed token; Logout drops it back to Anonymous. A missing,
// unknown or expired token is treated as Anonymous.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/gallery/internal/domain"
	"github.com/Skotchmaster/gallery/internal/tokens"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time

	mu    sync.RWMutex
	state State
}

func (s *Session) State() State {
	if s == nil {
		return Anonymous
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Authorize returns domain.ErrAuthorization unless s is authenticated.
func Authorize(s *Session) error {
	if !s.IsAuthenticated() {
		return domain.ErrAuthorization
	}
	return nil
}

// Verifier checks an admin credential. The store implements it.
type Verifier interface {
	VerifyAdmin(ctx context.Context, username, password string) (bool, error)
}

type Manager struct {
	verifier Verifier
	secret   []byte
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(v Verifier, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		verifier: v,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	ok, err := m.verifier.VerifyAdmin(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAuthentication
	}

	id := uuid.NewString()
	exp := m.now().Add(m.ttl)
	token, err := tokens.SignSession(id, exp, m.secret)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: id, Token: token, ExpiresAt: exp, state: Authenticated}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return s, nil
}

func (m *Manager) Logout(s *Session) {
	if s == nil {
		return
	}
	s.setState(Anonymous)

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()
}

// Resolve returns the live session for token, or nil.
func (m *Manager) Resolve(token string) *Session {
	if token == "" {
		return nil
	}
	claims, err := tokens.SessionClaimsFromToken(token, m.secret)
	if err != nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[claims.ID]
	if !ok {
		return nil
	}
	if !m.now().Before(s.ExpiresAt) {
		s.setState(Anonymous)
		delete(m.sessions, s.ID)
		return nil
	}
	return s
}

// Sweep forgets expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			s.setState(Anonymous)
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
