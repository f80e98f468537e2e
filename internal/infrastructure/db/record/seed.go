package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// StarterCatalog is written to the products collection the first time it is
// observed empty.
var StarterCatalog = []domain.Product{
	{
		ID:          "p1",
		Name:        "Classic White Tee",
		Category:    "T-shirts",
		Price:       499,
		Description: "100% Cotton, comfortable fit.",
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=500&q=80",
		Stock:       50,
	},
	{
		ID:          "p2",
		Name:        "Blue Denim Jacket",
		Category:    "Jackets",
		Price:       1299,
		Description: "Vintage wash denim jacket.",
		Image:       "https://images.unsplash.com/photo-1576871337632-b9aef4c17ab9?auto=format&fit=crop&w=500&q=80",
		Stock:       20,
	},
	{
		ID:          "p3",
		Name:        "Floral Summer Dress",
		Category:    "Women",
		Price:       1599,
		Description: "Lightweight and airy for summer.",
		Image:       "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?auto=format&fit=crop&w=500&q=80",
		Stock:       15,
	},
	{
		ID:          "p4",
		Name:        "Urban Hoodie Black",
		Category:    "Hoodies",
		Price:       899,
		Description: "Warm fleece hoodie.",
		Image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&w=500&q=80",
		Stock:       30,
	},
	{
		ID:          "p5",
		Name:        "Slim Fit Chinos",
		Category:    "Men",
		Price:       799,
		Description: "Beige chinos, perfect for office.",
		Image:       "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?auto=format&fit=crop&w=500&q=80",
		Stock:       40,
	},
}

// Seed administrator. These are well-known demo credentials, not a secret.
const (
	SeedAdminID       = "admin1"
	SeedAdminEmail    = "admin@vyom.com"
	SeedAdminPassword = "admin"
)

// Seeder fills empty collections with starter data.
type Seeder struct {
	store        *Store
	credentials  ports.Credentials
	resetCorrupt bool
	log          zerolog.Logger
}

// NewSeeder returns a Seeder. When resetCorrupt is true a collection that
// fails to decode is dropped and reseeded instead of failing startup.
func NewSeeder(s *Store, credentials ports.Credentials, resetCorrupt bool, log zerolog.Logger) *Seeder {
	return &Seeder{store: s, credentials: credentials, resetCorrupt: resetCorrupt, log: log}
}

// Seed writes the starter catalog and the administrator account into
// whichever of the two collections is empty.
func (s *Seeder) Seed(ctx context.Context) error {
	products := NewCollection[domain.Product](s.store, CollectionProducts)
	if err := seedCollection(ctx, s, products, func() ([]domain.Product, error) {
		return append([]domain.Product(nil), StarterCatalog...), nil
	}); err != nil {
		return err
	}

	users := NewCollection[domain.User](s.store, CollectionUsers)
	return seedCollection(ctx, s, users, func() ([]domain.User, error) {
		sealed, err := s.credentials.Seal(SeedAdminPassword)
		if err != nil {
			return nil, fmt.Errorf("seal admin password: %w", err)
		}
		return []domain.User{{
			ID:       SeedAdminID,
			Name:     "Vyom Admin",
			Email:    SeedAdminEmail,
			Password: sealed,
			Mobile:   "0000000000",
			Role:     domain.RoleAdmin,
		}}, nil
	})
}

func seedCollection[T any](ctx context.Context, s *Seeder, c *Collection[T], initial func() ([]T, error)) error {
	existing, err := c.ReadAll(ctx)
	if errors.Is(err, domain.ErrDataCorruption) && s.resetCorrupt {
		s.log.Warn().Err(err).Str("collection", c.Name()).Msg("corrupt collection, resetting")
		if err := c.Reset(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", c.Name(), err)
		}
		existing = nil
	} else if err != nil {
		return fmt.Errorf("seed %s: %w", c.Name(), err)
	}

	if len(existing) > 0 {
		return nil
	}

	records, err := initial()
	if err != nil {
		return fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	if err := c.WriteAll(ctx, records); err != nil {
		return fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	s.log.Info().Str("collection", c.Name()).Int("records", len(records)).Msg("collection seeded")
	return nil
}
