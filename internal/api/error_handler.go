package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns the single place where pipeline and domain
// failures become wire-level status codes:
//   - domain.ErrUnauthenticated → 401, domain.ErrForbidden → 403,
//     domain.ErrRateLimited → 429, with generic bodies.
//   - Known domain errors map to deterministic codes.
//   - Anything unexpected is logged in full and returned as a sanitized 500.
//
// Handlers and middleware return taxonomy errors and never pick auth status
// codes themselves.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	case errors.Is(err, domain.ErrInvalidCredentials):
		// One generic signal for unknown email and wrong password alike.
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "account already exists"
	case errors.Is(err, domain.ErrFavoriteExists):
		return http.StatusConflict, "property already favorited"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, "property not found"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "property image not found"
	case errors.Is(err, domain.ErrFavoriteNotFound):
		return http.StatusNotFound, "favorite not found"
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, "message not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
