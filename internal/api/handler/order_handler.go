package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderRepository
}

func NewOrderHandler(orders ports.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
}

// Mine handles GET /orders: the signed-in user's orders, oldest first.
func (h *OrderHandler) Mine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders})
}

// All handles GET /admin/orders.
func (h *OrderHandler) All(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders})
}
