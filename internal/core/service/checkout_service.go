package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// CheckoutService places the current cart as an order for the current user.
// Payment is simulated: every order starts pending.
type CheckoutService struct {
	session ports.SessionManager
	cart    ports.Cart
	orders  ports.OrderRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewCheckoutService(session ports.SessionManager, cart ports.Cart, orders ports.OrderRepository, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{session: session, cart: cart, orders: orders, log: log, now: time.Now}
}

// Checkout drains the cart into a pending order and saves it. When saving
// fails the drained lines are put back.
func (s *CheckoutService) Checkout(ctx context.Context) (*domain.Order, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}

	items := s.cart.Drain()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := domain.Order{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Items:  items,
		Total:  domain.SumItems(items),
		Status: domain.OrderPending,
		Date:   domain.FormatOrderDate(s.now()),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.cart.Restore(items)
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to save order")
		return nil, fmt.Errorf("checkout: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderValueTotal.Add(float64(order.Total))
	s.log.Info().
		Str("order_id", order.ID).
		Str("user_id", user.ID).
		Int64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order placed")

	return &order, nil
}
