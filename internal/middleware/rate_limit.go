package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/streamlinehq/streamline/internal/errs"
	"github.com/streamlinehq/streamline/internal/server"
)

// RateLimitMiddleware throttles per-client request rates and records
// rate limit hits as custom telemetry events.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit applies an in-memory token-bucket limiter keyed by client IP.
// Bulk endpoints use a tighter rate than reads.
func (r *RateLimitMiddleware) Limit(perSecond float64, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			return &errs.HTTPError{
				Code:     "TOO_MANY_REQUESTS",
				Message:  "Too many requests, slow down",
				Status:   http.StatusTooManyRequests,
				Override: true,
			}
		},
	})
}

// RecordRateLimitHit emits a custom event so throttling is visible in
// APM dashboards.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
