package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// PropertyHandler handles listing operations for buyers and agents.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type propertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	SizeSqft    float64 `json:"size_sqft"`
}

type propertiesResponse struct {
	Properties []*domain.Property `json:"properties"`
}

type propertyResponse struct {
	Property *domain.Property `json:"property"`
}

func (r propertyRequest) input() ports.PropertyInput {
	return ports.PropertyInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		SizeSqft:    r.SizeSqft,
	}
}

// List returns listings matching the optional filter query parameters.
//
// @Summary      Browse listings
// @Tags         properties
// @Produce      json
// @Param        location   query  string   false  "Location filter"
// @Param        min_price  query  number   false  "Minimum price"
// @Param        max_price  query  number   false  "Maximum price"
// @Success      200  {object}  propertiesResponse
// @Router       /properties/list [get]
func (h *PropertyHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := domain.PropertyFilter{Location: c.QueryParam("location")}
	if v := c.QueryParam("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.QueryParam("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	props, err := h.service.List(c.Request().Context(), user, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: props})
}

// View returns a single listing.
//
// @Summary      View a listing
// @Tags         properties
// @Produce      json
// @Param        id  path  string  true  "Property ID"
// @Success      200  {object}  propertyResponse
// @Failure      404  {object}  map[string]string
// @Router       /properties/view/{id} [get]
func (h *PropertyHandler) View(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.service.View(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: p})
}

// Add creates a listing owned by the acting agent.
//
// @Summary      Add a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        body  body      propertyRequest  true  "Listing details"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  map[string]string
// @Router       /properties/add [post]
func (h *PropertyHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Add(c.Request().Context(), user, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, propertyResponse{Property: p})
}

// Edit updates a listing owned by the acting agent.
//
// @Summary      Edit a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Property ID"
// @Param        body  body      propertyRequest  true  "Fields to change"
// @Success      200   {object}  propertyResponse
// @Failure      404   {object}  map[string]string
// @Router       /properties/edit/{id} [post]
func (h *PropertyHandler) Edit(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Edit(c.Request().Context(), user, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertyResponse{Property: p})
}

// Delete removes a listing owned by the acting agent.
//
// @Summary      Delete a listing
// @Tags         properties
// @Produce      json
// @Param        id  path  string  true  "Property ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /properties/delete/{id} [post]
func (h *PropertyHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted"})
}

// Manage returns the acting agent's own listings.
//
// @Summary      Manage own listings
// @Tags         properties
// @Produce      json
// @Success      200  {object}  propertiesResponse
// @Router       /properties/manage [get]
func (h *PropertyHandler) Manage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	props, err := h.service.Manage(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, propertiesResponse{Properties: props})
}

// DeleteImage removes one image record from a listing.
//
// @Summary      Delete a listing image
// @Tags         properties
// @Produce      json
// @Param        propertyID  path  string  true  "Property ID"
// @Param        imageID     path  string  true  "Image ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /properties/{propertyID}/images/{imageID}/delete [post]
func (h *PropertyHandler) DeleteImage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteImage(c.Request().Context(), user, c.Param("propertyID"), c.Param("imageID")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "image deleted"})
}
