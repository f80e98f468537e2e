package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

type AuthHandler struct {
	session ports.SessionManager
}

func NewAuthHandler(session ports.SessionManager) *AuthHandler {
	return &AuthHandler{session: session}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Mobile   string `json:"mobile"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
}

// Register creates a user account and signs it in. New accounts always get
// the user role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.session.Register(c.Request().Context(), domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Mobile:   strings.TrimSpace(req.Mobile),
		Role:     domain.RoleUser,
	})
	if err != nil {
		return err
	}

	public := user.Public()
	return c.JSON(http.StatusCreated, authResponse{Authenticated: true, User: &public})
}

// Login authenticates by email and password and replaces the current session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.session.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}

	public := user.Public()
	return c.JSON(http.StatusOK, authResponse{Authenticated: true, User: &public})
}

// Logout ends the session. Logging out while anonymous is not an error.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me reports the current session.
func (h *AuthHandler) Me(c echo.Context) error {
	user := h.session.CurrentUser()
	if user == nil {
		return c.JSON(http.StatusOK, authResponse{Authenticated: false})
	}
	public := user.Public()
	return c.JSON(http.StatusOK, authResponse{Authenticated: true, User: &public})
}
