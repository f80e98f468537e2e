package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// Cart is the session-lifetime shopping cart. It is never persisted.
type Cart interface {
	Add(p domain.Product)
	Remove(itemID string)
	Items() []domain.CartItem
	Total() int64
	Len() int
	// Drain atomically takes every line, leaving the cart empty.
	Drain() []domain.CartItem
	// Restore re-inserts drained lines at the front.
	Restore(items []domain.CartItem)
	Clear()
}

// CheckoutService turns the current cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.Order, error)
}
