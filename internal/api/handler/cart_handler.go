package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// CartHandler exposes the in-memory cart and checkout.
type CartHandler struct {
	cart     ports.Cart
	catalog  ports.CatalogRepository
	checkout ports.CheckoutService
}

func NewCartHandler(cart ports.Cart, catalog ports.CatalogRepository, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, checkout: checkout}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total int64             `json:"total"`
}

func (h *CartHandler) snapshot() cartResponse {
	return cartResponse{
		Items: h.cart.Items(),
		Count: h.cart.Len(),
		Total: h.cart.Total(),
	}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

// AddItem handles POST /cart/items. The product is looked up so the cart
// holds a snapshot of its current price.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.catalog.Get(c.Request().Context(), req.ProductID)
	if err != nil {
		return err
	}
	h.cart.Add(*p)

	return c.JSON(http.StatusCreated, h.snapshot())
}

// RemoveItem handles DELETE /cart/items/:id. Removing an absent item is a no-op.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.cart.Remove(c.Param("id"))
	return c.JSON(http.StatusOK, h.snapshot())
}

// Checkout handles POST /cart/checkout.
func (h *CartHandler) Checkout(c echo.Context) error {
	order, err := h.checkout.Checkout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}
