package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// SessionManager tracks the authenticated user.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, candidate domain.User) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *domain.User
	IsAuthenticated() bool
}
