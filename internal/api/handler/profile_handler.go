package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// ProfileHandler serves the authenticated user's own account: profile view,
// profile editing, and the role-shaped dashboard.
type ProfileHandler struct {
	userService ports.UserService
}

func NewProfileHandler(userService ports.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type editProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

type dashboardResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Profile returns the current account.
//
// @Summary      Current profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// EditProfile updates names and optionally the password.
//
// @Summary      Edit profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      editProfileRequest  true  "Profile changes"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /editprofile [post]
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req editProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.EditProfile(c.Request().Context(), user, ports.EditProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: updated})
}

// Dashboard returns a summary for the landing page after login.
//
// @Summary      Dashboard
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Email: user.Email,
		Name:  user.FirstName + " " + user.LastName,
		Role:  string(user.Role),
	})
}
