// Package router initializes the HTTP router (using echo).
//
// It registers the middleware chain and maps API route groups to their
// handlers. Middleware order matters: request IDs and tracing come
// first so every later stage, including the auth middleware, logs with
// full correlation context.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/streamlinehq/streamline/internal/handler"
	"github.com/streamlinehq/streamline/internal/middleware"
	"github.com/streamlinehq/streamline/internal/server"
)

// New assembles the echo instance: global middleware, system routes,
// and the versioned API.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())
	e.Use(m.Global.CORS())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, m, s)

	return e
}
