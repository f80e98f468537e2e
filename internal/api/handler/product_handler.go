package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// ProductHandler serves the catalog.
type ProductHandler struct {
	catalog ports.CatalogRepository
}

func NewProductHandler(catalog ports.CatalogRepository) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type createProductRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

type productListResponse struct {
	Category string           `json:"category"`
	Products []domain.Product `json:"products"`
}

// List handles GET /products. The optional category query narrows the list;
// "All" or an empty value returns everything.
func (h *ProductHandler) List(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))

	products, err := h.catalog.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	if category == "" {
		category = "All"
	}
	return c.JSON(http.StatusOK, productListResponse{Category: category, Products: products})
}

// Categories handles GET /products/categories.
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"categories": categories})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /admin/products. A missing id is generated.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p := domain.Product{
		ID:          strings.TrimSpace(req.ID),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Stock:       req.Stock,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := h.catalog.Add(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}
