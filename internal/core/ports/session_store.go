package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// SessionStore is the persisted copy of the current session. Load returns
// (nil, nil) when no session is stored.
type SessionStore interface {
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}

// PhotoStore keeps the last try-on photo so it can prefill later visits.
type PhotoStore interface {
	Load(ctx context.Context) (*domain.Photo, error)
	Save(ctx context.Context, p domain.Photo) error
	Clear(ctx context.Context) error
}
