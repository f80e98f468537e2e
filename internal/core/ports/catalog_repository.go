package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// CatalogRepository defines persistence operations for products.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// ListByCategory returns all products when category is "" or "All".
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Add(ctx context.Context, p domain.Product) error
}
