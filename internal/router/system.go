package router

import (
	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/handler"
)

// registerSystemRoutes wires endpoints that are not business logic:
// health, docs UI, and the static assets the docs UI reads.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)

	e.Static("/static", "static")
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
