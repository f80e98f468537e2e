package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderShipped   OrderStatus = "shipped"
)

// Order is a checkout receipt. Total is fixed at creation and never recomputed.
type Order struct {
	ID     string      `json:"id" validate:"required"`
	UserID string      `json:"userId" validate:"required"`
	Items  []CartItem  `json:"items" validate:"dive"`
	Total  int64       `json:"total" validate:"gte=0"`
	Status OrderStatus `json:"status" validate:"required,oneof=pending completed shipped"`
	Date   string      `json:"date" validate:"required"`
}

// SumItems returns the sum of price × quantity over items.
func SumItems(items []CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

// FormatOrderDate renders t the way order dates are persisted (ISO-8601, UTC, millis).
func FormatOrderDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
