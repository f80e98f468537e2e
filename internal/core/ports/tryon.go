package ports

import (
	"context"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// TryOnRequester calls the external image compositing service. Failures are
// reported as *domain.ExternalServiceError. Implementations must not retry.
type TryOnRequester interface {
	Generate(ctx context.Context, photo domain.Photo, garmentImage string) (*domain.Photo, error)
}

// GenerateInput carries one user-initiated try-on action.
type GenerateInput struct {
	ProductID string
	// Photo is optional; the saved photo is used when nil.
	Photo *domain.Photo
	// ActionID identifies the user action (e.g. an Idempotency-Key header).
	// Empty means no duplicate protection.
	ActionID string
}

// TryOnResult is returned by a successful generation.
type TryOnResult struct {
	ProductID string
	Image     domain.Photo
}

// TryOnService orchestrates a try-on action.
type TryOnService interface {
	Generate(ctx context.Context, in GenerateInput) (*TryOnResult, error)
	SavePhoto(ctx context.Context, p domain.Photo) error
	SavedPhoto(ctx context.Context) (*domain.Photo, error)
	ForgetPhoto(ctx context.Context) error
}
