package record

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// OrderRepository implements ports.OrderRepository on the orders collection.
type OrderRepository struct {
	orders *Collection[domain.Order]
}

func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{orders: NewCollection[domain.Order](s, CollectionOrders)}
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.orders.ReadAll(ctx)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	all, err := r.orders.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Order, 0)
	for _, o := range all {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

// Save appends o as-is; totals are the caller's responsibility.
func (r *OrderRepository) Save(ctx context.Context, o domain.Order) error {
	return r.orders.Append(ctx, o)
}
