package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// HeaderIdempotencyKey identifies one user action across client retries.
const HeaderIdempotencyKey = "Idempotency-Key"

// TryOnHandler runs virtual try-on and manages the saved photo.
type TryOnHandler struct {
	service ports.TryOnService
}

func NewTryOnHandler(service ports.TryOnService) *TryOnHandler {
	return &TryOnHandler{service: service}
}

type generateRequest struct {
	// Photo is a data: URL. When empty the saved photo is used.
	Photo string `json:"photo" validate:"omitempty,datauri"`
}

type photoRequest struct {
	Photo string `json:"photo" validate:"required,datauri"`
}

type photoResponse struct {
	Photo string `json:"photo"`
}

type generateResponse struct {
	ProductID string `json:"product_id"`
	Image     string `json:"image"`
}

// Generate handles POST /try-on/:productId.
func (h *TryOnHandler) Generate(c echo.Context) error {
	var req generateRequest
	// -1 means the length is unknown (chunked upload), not that the body is empty.
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}

	in := ports.GenerateInput{
		ProductID: c.Param("productId"),
		ActionID:  c.Request().Header.Get(HeaderIdempotencyKey),
	}
	if req.Photo != "" {
		p, err := domain.ParseDataURL(req.Photo)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.Photo = &p
	}

	result, err := h.service.Generate(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, generateResponse{
		ProductID: result.ProductID,
		Image:     result.Image.DataURL(),
	})
}

// PutPhoto handles PUT /try-on/photo.
func (h *TryOnHandler) PutPhoto(c echo.Context) error {
	var req photoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := domain.ParseDataURL(req.Photo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SavePhoto(c.Request().Context(), p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPhoto handles GET /try-on/photo.
func (h *TryOnHandler) GetPhoto(c echo.Context) error {
	p, err := h.service.SavedPhoto(c.Request().Context())
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNoPhoto
	}
	return c.JSON(http.StatusOK, photoResponse{Photo: p.DataURL()})
}

// DeletePhoto handles DELETE /try-on/photo.
func (h *TryOnHandler) DeletePhoto(c echo.Context) error {
	if err := h.service.ForgetPhoto(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
