package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// IdentityRepository defines persistence operations for user accounts.
// Add fails with ErrEmailAlreadyExists or ErrDuplicateID and must check both
// atomically with the write.
type IdentityRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Add(ctx context.Context, u domain.User) error
}
