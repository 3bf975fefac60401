package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/api/metrics"
	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// RateLimit rejects over-limit callers before any credential or signature
// work happens, so it must be registered ahead of Authenticate in the chain.
// Requests are keyed by client IP. A gate failure fails open: admission
// control degrading must not take the site down with it.
func RateLimit(gate ports.RateGate, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := gate.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("rate gate unavailable, failing open")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
