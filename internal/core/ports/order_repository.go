package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// OrderRepository persists checkout receipts, oldest first.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Save(ctx context.Context, o domain.Order) error
}
