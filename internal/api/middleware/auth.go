package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// RequireSession rejects anonymous requests and injects the signed-in user
// (key "user") and its role (key "role") into the context.
func RequireSession(session ports.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := session.CurrentUser()
			if user == nil {
				return domain.ErrNotAuthenticated
			}

			c.Set("user", user)
			c.Set("role", user.Role)

			return next(c)
		}
	}
}
