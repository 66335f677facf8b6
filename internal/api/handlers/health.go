package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	backend Backend
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(b Backend) *HealthHandler {
	return &HealthHandler{backend: b}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 once the listing catalogue can be served, 503
// otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	houses, err := h.backend.Houses(c.Request().Context())
	if err != nil || len(houses) == 0 {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
