package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: h.now().UTC(),
	})
}
