package record

import (
	"context"
	"fmt"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// IdentityRepository implements ports.IdentityRepository on the users collection.
type IdentityRepository struct {
	users *Collection[domain.User]
}

func NewIdentityRepository(s *Store) *IdentityRepository {
	return &IdentityRepository{users: NewCollection[domain.User](s, CollectionUsers)}
}

func (r *IdentityRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.users.ReadAll(ctx)
}

// FindByEmail returns the first user whose email matches exactly (case-sensitive).
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	all, err := r.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Email == email {
			return &all[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Add appends u. The id and email checks run in the same read-modify-write
// as the append, so concurrent registrations cannot share an email.
func (r *IdentityRepository) Add(ctx context.Context, u domain.User) error {
	return r.users.Update(ctx, func(all []domain.User) ([]domain.User, error) {
		for _, existing := range all {
			if existing.ID == u.ID {
				return nil, fmt.Errorf("add user %s: %w", u.ID, domain.ErrDuplicateID)
			}
			if existing.Email == u.Email {
				return nil, fmt.Errorf("add user %s: %w", u.ID, domain.ErrEmailAlreadyExists)
			}
		}
		return append(all, u), nil
	})
}
