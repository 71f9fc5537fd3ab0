package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /api/seed
type SeedHandler struct {
	uc *usecase.ProductUsecase
}

func NewSeedHandler(uc *usecase.ProductUsecase) *SeedHandler {
	return &SeedHandler{uc: uc}
}

type seedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// guardはseed key検証のmiddleware
func (h *SeedHandler) RegisterRoutes(g *echo.Group, guard echo.MiddlewareFunc) {
	g.POST("/seed", h.seed, guard)
}

func (h *SeedHandler) seed(c echo.Context) error {
	n, err := h.uc.Seed(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, seedResponse{
		Success: true,
		Message: "Database seeded successfully",
		Count:   n,
	})
}
