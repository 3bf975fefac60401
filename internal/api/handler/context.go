package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/api/middleware"
	"github.com/hotproperties/hot-properties/internal/core/domain"
)

// currentUser returns the identity the authentication middleware resolved for
// this request. The route gate rejects anonymous callers before a gated
// handler runs, so a miss here means a wiring bug; the taxonomy error keeps
// the response a clean 401 regardless.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
