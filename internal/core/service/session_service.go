package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// SessionService owns the current session. Every transition writes the
// in-memory copy and the persisted slot together.
type SessionService struct {
	users       ports.IdentityRepository
	slot        ports.SessionStore
	credentials ports.Credentials
	log         zerolog.Logger

	mu      sync.RWMutex
	current *domain.User
}

// NewSessionService restores the session persisted in slot. A malformed slot
// is cleared and the service starts anonymous.
func NewSessionService(
	ctx context.Context,
	users ports.IdentityRepository,
	slot ports.SessionStore,
	credentials ports.Credentials,
	log zerolog.Logger,
) (*SessionService, error) {
	s := &SessionService{users: users, slot: slot, credentials: credentials, log: log}

	u, err := slot.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrDataCorruption):
		s.log.Warn().Err(err).Msg("discarding unreadable session")
		metrics.SessionsTotal.WithLabelValues("restore", "corrupt").Inc()
		if err := slot.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear session: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("restore session: %w", err)
	case u != nil:
		s.current = u
		metrics.SessionsTotal.WithLabelValues("restore", "ok").Inc()
		s.log.Info().Str("user_id", u.ID).Msg("session restored")
	}
	return s, nil
}

// Login authenticates against the identity repository and replaces any
// current session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.SessionsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.SessionsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.credentials.Matches(user.Password, password) {
		metrics.SessionsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.set(ctx, *user); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("login", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return cloneUser(user), nil
}

// Register creates the account and logs it in. The candidate's email must
// not be in use; the repository enforces that as part of the insert.
func (s *SessionService) Register(ctx context.Context, candidate domain.User) (*domain.User, error) {
	user := candidate
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	sealed, err := s.credentials.Seal(candidate.Password)
	if err != nil {
		return nil, fmt.Errorf("register: seal password: %w", err)
	}
	user.Password = sealed

	if err := s.users.Add(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			metrics.SessionsTotal.WithLabelValues("register", "email_exists").Inc()
			return nil, domain.ErrEmailAlreadyExists
		}
		metrics.SessionsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := s.set(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return cloneUser(&user), nil
}

// Logout clears the session. Calling it while anonymous is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if s.current != nil {
		s.log.Info().Str("user_id", s.current.ID).Msg("user logged out")
	}
	s.current = nil
	metrics.SessionsTotal.WithLabelValues("logout", "ok").Inc()
	return nil
}

// CurrentUser returns a copy of the authenticated user, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.current)
}

func (s *SessionService) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// set persists u first so memory never holds a session the slot lacks.
func (s *SessionService) set(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Save(ctx, u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.current = &u
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
