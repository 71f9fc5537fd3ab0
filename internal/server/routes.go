package server

import (
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Product *handler.ProductHandler
	Seed    *handler.SeedHandler
	Health  *handler.HealthHandler
}

// /api 配下にまとめる
func RegisterRoutes(e *echo.Echo, h Handlers, seedKey string) {
	api := e.Group("/api")

	h.Product.RegisterRoutes(api)
	h.Seed.RegisterRoutes(api, middleware.SeedKeyGuard(seedKey))
	h.Health.RegisterRoutes(api)
}
