package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/api/metrics"
	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

// principalKey is the per-request context slot holding the resolved identity.
// It is written at most once per request, by Authenticate.
const principalKey = "auth.principal"

// DefaultExemptPrefixes are the path prefixes that bypass token extraction
// entirely: public assets plus the login and registration endpoints.
var DefaultExemptPrefixes = []string{"/login", "/css", "/register", "/images"}

// CurrentUser returns the identity resolved for this request, or false when
// the request is anonymous. This is the only sanctioned way to read the
// principal; there is no ambient/global security state.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(principalKey).(*domain.User)
	return user, ok && user != nil
}

// SetPrincipal attaches the resolved identity to the request context. Used by
// Authenticate and by tests that need an authenticated context.
func SetPrincipal(c echo.Context, user *domain.User) {
	c.Set(principalKey, user)
}

// Authenticate re-establishes identity from the session cookie. It is purely
// context population: a missing, malformed, expired or orphaned token leaves
// the request anonymous and continues down the chain. Rejection, when a route
// demands it, is Authorize's job.
func Authenticate(tokens ports.TokenCodec, users ports.UserRepository, exemptPrefixes []string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range exemptPrefixes {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			// Already populated: invoked twice in one request, no-op.
			if _, ok := CurrentUser(c); ok {
				return next(c)
			}

			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(tokenResult(err)).Inc()
				log.Debug().Err(err).Str("path", path).Msg("session token rejected, continuing anonymous")
				return next(c)
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				// Deleted account with a live token: same as no token.
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				log.Debug().Str("subject", claims.Subject).Msg("token subject no longer resolves")
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			SetPrincipal(c, user)
			log.Debug().Str("email", user.Email).Str("role", string(user.Role)).Str("path", path).Msg("request authenticated")

			return next(c)
		}
	}
}

// extractToken returns the value of the first cookie named jwt, in arrival
// order, or "" when absent or blank.
func extractToken(c echo.Context) string {
	for _, cookie := range c.Request().Cookies() {
		if cookie.Name == CookieName {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}

func tokenResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "signature_invalid"
	default:
		return "malformed"
	}
}
