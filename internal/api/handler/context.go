package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// ContextUserKey is where the session middleware stores the signed-in user.
const ContextUserKey = "user"

// ctxUser returns the user injected by the session middleware. Routes that
// call it are always mounted behind that middleware, so a missing value
// means the request is anonymous.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(ContextUserKey).(*domain.User)
	if u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return u, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator. Failures are reported as 400 with the validator's message.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
