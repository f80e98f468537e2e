package record

import (
	"context"
	"fmt"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// AllCategories is the catalog filter value meaning "no filter".
const AllCategories = "All"

// CatalogRepository implements ports.CatalogRepository on the products collection.
type CatalogRepository struct {
	products *Collection[domain.Product]
}

func NewCatalogRepository(s *Store) *CatalogRepository {
	return &CatalogRepository{products: NewCollection[domain.Product](s, CollectionProducts)}
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.ReadAll(ctx)
}

func (r *CatalogRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	all, err := r.products.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" || category == AllCategories {
		return all, nil
	}

	matched := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Categories lists distinct categories in first-seen order.
func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	all, err := r.products.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(all))
	categories := make([]string, 0)
	for _, p := range all {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	all, err := r.products.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// Add appends p. The id must be unique within the catalog.
func (r *CatalogRepository) Add(ctx context.Context, p domain.Product) error {
	return r.products.Update(ctx, func(all []domain.Product) ([]domain.Product, error) {
		for _, existing := range all {
			if existing.ID == p.ID {
				return nil, fmt.Errorf("add product %s: %w", p.ID, domain.ErrDuplicateID)
			}
		}
		return append(all, p), nil
	})
}
