package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
	"github.com/vyom/tryon-store/internal/pkg/metrics"
)

// ActionGuard abstracts the duplicate-action store (Redis or in-process).
type ActionGuard interface {
	Claim(ctx context.Context, actionID string) (bool, error)
}

type tryOnService struct {
	catalog   ports.CatalogRepository
	photos    ports.PhotoStore
	requester ports.TryOnRequester
	guard     ActionGuard
	log       zerolog.Logger
}

// NewTryOnService returns a TryOnService implementation. guard may be nil,
// in which case action ids are ignored.
func NewTryOnService(
	catalog ports.CatalogRepository,
	photos ports.PhotoStore,
	requester ports.TryOnRequester,
	guard ActionGuard,
	log zerolog.Logger,
) ports.TryOnService {
	return &tryOnService{
		catalog:   catalog,
		photos:    photos,
		requester: requester,
		guard:     guard,
		log:       log,
	}
}

// Generate runs one user-initiated try-on. The external service is called at
// most once and never retried; its failure reason is returned unchanged.
func (s *tryOnService) Generate(ctx context.Context, in ports.GenerateInput) (*ports.TryOnResult, error) {
	// 1. Resolve the garment.
	product, err := s.catalog.Get(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("try-on: %w", err)
	}

	// 2. Resolve the photo; a fresh one replaces the saved one.
	photo, err := s.resolvePhoto(ctx, in.Photo)
	if err != nil {
		return nil, err
	}

	// 3. Duplicate check: a re-sent action must not reach the service twice.
	if in.ActionID != "" && s.guard != nil {
		fresh, err := s.guard.Claim(ctx, in.ActionID)
		if err != nil {
			s.log.Warn().Err(err).Str("action_id", in.ActionID).Msg("action guard failed, generating anyway")
		} else if !fresh {
			metrics.TryOnRequestsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.ErrDuplicateAction
		}
	}

	// 4. Single call to the external service.
	start := time.Now()
	image, err := s.requester.Generate(ctx, *photo, product.Image)
	metrics.TryOnDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TryOnRequestsTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Str("product_id", product.ID).Msg("try-on generation failed")
		var ext *domain.ExternalServiceError
		if errors.As(err, &ext) {
			return nil, ext
		}
		return nil, &domain.ExternalServiceError{Reason: err.Error()}
	}

	metrics.TryOnRequestsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("product_id", product.ID).
		Dur("elapsed", time.Since(start)).
		Msg("try-on generated")

	return &ports.TryOnResult{ProductID: product.ID, Image: *image}, nil
}

func (s *tryOnService) resolvePhoto(ctx context.Context, supplied *domain.Photo) (*domain.Photo, error) {
	if supplied != nil {
		if err := s.photos.Save(ctx, *supplied); err != nil {
			return nil, fmt.Errorf("try-on: save photo: %w", err)
		}
		return supplied, nil
	}

	saved, err := s.photos.Load(ctx)
	if errors.Is(err, domain.ErrDataCorruption) {
		s.log.Warn().Err(err).Msg("discarding unreadable saved photo")
		if clearErr := s.photos.Clear(ctx); clearErr != nil {
			return nil, fmt.Errorf("try-on: clear photo: %w", clearErr)
		}
		saved, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("try-on: load photo: %w", err)
	}
	if saved == nil {
		metrics.TryOnRequestsTotal.WithLabelValues("no_photo").Inc()
		return nil, domain.ErrNoPhoto
	}
	return saved, nil
}

func (s *tryOnService) SavePhoto(ctx context.Context, p domain.Photo) error {
	if err := s.photos.Save(ctx, p); err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	return nil
}

// SavedPhoto returns the saved photo, or (nil, nil) when none is stored.
func (s *tryOnService) SavedPhoto(ctx context.Context) (*domain.Photo, error) {
	p, err := s.photos.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load photo: %w", err)
	}
	return p, nil
}

func (s *tryOnService) ForgetPhoto(ctx context.Context) error {
	if err := s.photos.Clear(ctx); err != nil {
		return fmt.Errorf("forget photo: %w", err)
	}
	return nil
}
