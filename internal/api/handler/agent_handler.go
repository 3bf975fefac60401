package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// AgentHandler handles agent administration, admin only.
type AgentHandler struct {
	userService ports.UserService
}

func NewAgentHandler(userService ports.UserService) *AgentHandler {
	return &AgentHandler{userService: userService}
}

type agentsResponse struct {
	Agents []*domain.User `json:"agents"`
}

type deleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// List returns all agent accounts.
//
// @Summary      List agents
// @Tags         agents
// @Produce      json
// @Success      200  {object}  agentsResponse
// @Router       /agents [get]
func (h *AgentHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	agents, err := h.userService.ListAgents(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agentsResponse{Agents: agents})
}

// Create provisions a new agent account.
//
// @Summary      Create an agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Agent details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /agents/create [post]
func (h *AgentHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	agent, err := h.userService.CreateAgent(c.Request().Context(), user, ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: agent})
}

// Delete removes an account by email.
//
// @Summary      Delete a user
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        body  body      deleteUserRequest  true  "Target account"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /agents/delete [post]
func (h *AgentHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.DeleteUserByEmail(c.Request().Context(), user, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
