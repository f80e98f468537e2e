package middleware

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

type stubSession struct {
	user *domain.User
}

func (s *stubSession) Login(context.Context, string, string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubSession) Register(_ context.Context, u domain.User) (*domain.User, error) {
	return &u, nil
}

func (s *stubSession) Logout(context.Context) error {
	s.user = nil
	return nil
}

func (s *stubSession) CurrentUser() *domain.User { return s.user }

func (s *stubSession) IsAuthenticated() bool { return s.user != nil }
