package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/service"
)

type stubCheckout struct {
	order *domain.Order
	err   error
}

func (s *stubCheckout) Checkout(ctx context.Context) (*domain.Order, error) {
	return s.order, s.err
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestCartHandler_AddAndRemove(t *testing.T) {
	e := newTestEcho()
	cart := service.NewCart()
	handler := NewCartHandler(cart, testCatalog(), &stubCheckout{})

	for _, id := range []string{"p3", "p3", "p1"} {
		rec := httptest.NewRecorder()
		if err := handler.AddItem(e.NewContext(jsonRequest(http.MethodPost, "/cart/items", `{"product_id":"`+id+`"}`), rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	if err := handler.Get(e.NewContext(httptest.NewRequest(http.MethodGet, "/cart", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeCart(t, rec)
	if resp.Count != 3 || resp.Total != 2097 {
		t.Fatalf("expected 3 items totalling 2097, got %+v", resp)
	}

	rec = httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("p3")
	if err := handler.RemoveItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp = decodeCart(t, rec)
	if resp.Count != 1 || resp.Total != 499 {
		t.Fatalf("expected only the tee left, got %+v", resp)
	}
}

func TestCartHandler_AddUnknownProduct(t *testing.T) {
	e := newTestEcho()
	cart := service.NewCart()
	handler := NewCartHandler(cart, testCatalog(), &stubCheckout{})

	err := handler.AddItem(e.NewContext(jsonRequest(http.MethodPost, "/cart/items", `{"product_id":"nope"}`), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if cart.Len() != 0 {
		t.Fatalf("cart must stay empty")
	}

	err = handler.AddItem(e.NewContext(jsonRequest(http.MethodPost, "/cart/items", `{}`), httptest.NewRecorder()))
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestCartHandler_Checkout(t *testing.T) {
	e := newTestEcho()
	order := &domain.Order{ID: "o1", UserID: "u1", Total: 2097, Status: domain.OrderPending}
	handler := NewCartHandler(service.NewCart(), testCatalog(), &stubCheckout{order: order})

	rec := httptest.NewRecorder()
	if err := handler.Checkout(e.NewContext(httptest.NewRequest(http.MethodPost, "/cart/checkout", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	handler = NewCartHandler(service.NewCart(), testCatalog(), &stubCheckout{err: domain.ErrEmptyCart})
	err := handler.Checkout(e.NewContext(httptest.NewRequest(http.MethodPost, "/cart/checkout", nil), httptest.NewRecorder()))
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}
