package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vyom/tryon-store/internal/api/handler"
	"github.com/vyom/tryon-store/internal/api/middleware"
	"github.com/vyom/tryon-store/internal/core/domain"
	"github.com/vyom/tryon-store/internal/core/ports"
)

// Dependencies are the wired core services the router exposes.
type Dependencies struct {
	Catalog  ports.CatalogRepository
	Orders   ports.OrderRepository
	Session  ports.SessionManager
	Cart     ports.Cart
	Checkout ports.CheckoutService
	TryOn    ports.TryOnService
	// Readiness lists the backends probed by /health/ready.
	Readiness map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.BodyLimit("20M"))

	// --- Handlers ---
	productHandler := handler.NewProductHandler(deps.Catalog)
	authHandler := handler.NewAuthHandler(deps.Session)
	cartHandler := handler.NewCartHandler(deps.Cart, deps.Catalog, deps.Checkout)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	tryOnHandler := handler.NewTryOnHandler(deps.TryOn)

	requireSession := middleware.RequireSession(deps.Session)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Catalog ---
	e.GET("/products", productHandler.List)
	e.GET("/products/categories", productHandler.Categories)
	e.GET("/products/:id", productHandler.Get)

	// --- Session ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Cart ---
	e.GET("/cart", cartHandler.Get)
	e.POST("/cart/items", cartHandler.AddItem)
	e.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	e.POST("/cart/checkout", cartHandler.Checkout, requireSession)

	e.GET("/orders", orderHandler.Mine, requireSession)

	// --- Try-on ---
	e.POST("/try-on/:productId", tryOnHandler.Generate)
	e.PUT("/try-on/photo", tryOnHandler.PutPhoto)
	e.GET("/try-on/photo", tryOnHandler.GetPhoto)
	e.DELETE("/try-on/photo", tryOnHandler.DeletePhoto)

	// --- Admin ---
	admin := e.Group("/admin", requireSession, adminOnly)
	admin.POST("/products", productHandler.Create)
	admin.GET("/orders", orderHandler.All)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
