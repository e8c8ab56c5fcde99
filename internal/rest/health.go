package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	version string
	sellers int
}

func NewHealthHandler(version string, sellers int) *HealthHandler {
	return &HealthHandler{version: version, sellers: sellers}
}

// GET /healthz
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"sellers": h.sellers,
	})
}
