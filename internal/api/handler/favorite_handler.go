package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// FavoriteHandler handles a buyer's saved listings.
type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List returns the buyer's saved listings.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  propertiesResponse
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	props, err := h.service.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: props})
}

// Add saves a listing to the buyer's favorites.
//
// @Summary      Add favorite
// @Tags         favorites
// @Produce      json
// @Param        propertyID  path  string  true  "Property ID"
// @Success      201  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /favorites/add/{propertyID} [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Add(c.Request().Context(), user, c.Param("propertyID")); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "favorite added"})
}

// Remove drops a listing from the buyer's favorites.
//
// @Summary      Remove favorite
// @Tags         favorites
// @Produce      json
// @Param        propertyID  path  string  true  "Property ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /favorites/remove/{propertyID} [post]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), user, c.Param("propertyID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "favorite removed"})
}
