package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The generation service's reason is shown to the user as-is.
	var ext *domain.ExternalServiceError
	if errors.As(err, &ext) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("try-on service failure")
		return http.StatusBadGateway, ext.Reason
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, domain.ErrDuplicateID):
		return http.StatusConflict, "id already exists"
	case errors.Is(err, domain.ErrDuplicateAction):
		return http.StatusConflict, "this try-on was already requested"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "cart is empty"
	case errors.Is(err, domain.ErrNoPhoto):
		return http.StatusUnprocessableEntity, "upload a photo first"
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway, "try-on service unavailable"
	}

	// Unexpected error (data corruption included): log the real cause,
	// return a generic message.
	ev := log.Error()
	if errors.Is(err, domain.ErrDataCorruption) {
		ev = ev.Bool("data_corruption", true)
	}
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
