package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
var ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailAlreadyExists = errors.New("email already exists")
var ErrDuplicateID = errors.New("record id already exists")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")

// ErrDataCorruption is returned when a persisted collection cannot be decoded
// or fails schema validation. Callers may reset the collection.
var ErrDataCorruption = errors.New("data corruption")

var ErrEmptyCart = errors.New("cart is empty")
var ErrNoPhoto = errors.New("no try-on photo provided")
var ErrDuplicateAction = errors.New("try-on action already submitted")

var ErrExternalService = errors.New("external service failure")

// ExternalServiceError carries the human-readable reason reported by (or about)
// the image generation service. Reason is shown to the user verbatim.
type ExternalServiceError struct {
	Reason string
}

func (e *ExternalServiceError) Error() string {
	return e.Reason
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

// NewExternalServiceError builds an ExternalServiceError from a format string.
func NewExternalServiceError(format string, args ...any) *ExternalServiceError {
	return &ExternalServiceError{Reason: fmt.Sprintf(format, args...)}
}
