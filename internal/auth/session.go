package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/califeryan/goutte-server/internal/clock"
	"github.com/califeryan/goutte-server/internal/models"
)

// Errors
var (
	// ErrInvalidCredentials reports a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession reports a missing or expired session token.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrBadAdminToken reports a wrong shared secret on an admin login.
	ErrBadAdminToken = errors.New("invalid admin token")
)

// Principal identifies an authenticated caller: either a player or an
// administrator.
type Principal struct {
	ID    int64
	Admin bool
}

// Session represents an authenticated session.
type Session struct {
	Token     string
	Principal Principal
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PlayerFinder looks up player credentials for login.
type PlayerFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Player, error)
}

// AdminFinder looks up administrator credentials for login.
type AdminFinder interface {
	GetByPseudonyme(ctx context.Context, pseudonyme string) (*models.AdminAccount, error)
}

// Service is the single authentication strategy for this deployment: bcrypt
// credential checks producing bearer-token sessions held in memory.
type Service struct {
	players    PlayerFinder
	admins     AdminFinder
	clock      clock.Clock
	adminToken string
	ttl        time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService constructs the session service. adminToken is the shared secret
// required on top of credentials for administrator logins.
func NewService(players PlayerFinder, admins AdminFinder, clk clock.Clock, adminToken string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		players:    players,
		admins:     admins,
		clock:      clk,
		adminToken: adminToken,
		ttl:        ttl,
		sessions:   make(map[string]*Session),
	}
}

// LoginPlayer authenticates a player by email and password and opens a
// session for them.
func (s *Service) LoginPlayer(ctx context.Context, email, password string) (*Session, error) {
	player, err := s.players.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, player.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.createSession(Principal{ID: player.ID}), nil
}

// LoginAdmin authenticates an administrator by pseudonyme, password, and the
// shared admin token, and opens an admin session.
func (s *Service) LoginAdmin(ctx context.Context, pseudonyme, password, token string) (*Session, error) {
	if token != s.adminToken {
		return nil, ErrBadAdminToken
	}
	admin, err := s.admins.GetByPseudonyme(ctx, pseudonyme)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.createSession(Principal{ID: admin.ID, Admin: true}), nil
}

// Validate resolves a bearer token to its principal. Expired sessions are
// dropped on sight.
func (s *Service) Validate(token string) (*Principal, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}
	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	principal := session.Principal
	return &principal, nil
}

// Invalidate removes a session.
func (s *Service) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions; call periodically.
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) createSession(p Principal) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     uuid.NewString(),
		Principal: p,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}
