package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// MessageHandler handles buyer/agent messaging.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Body       string `json:"body" validate:"required"`
}

type replyRequest struct {
	Body string `json:"body" validate:"required"`
}

type messagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type singleMessageResponse struct {
	Message *domain.Message `json:"message"`
}

// Send records a buyer inquiry about a property.
//
// @Summary      Send an inquiry
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Inquiry"
// @Success      201   {object}  singleMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /messages/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.Send(c.Request().Context(), user, ports.SendMessageInput{
		PropertyID: req.PropertyID,
		Body:       req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, singleMessageResponse{Message: m})
}

// BuyerInbox returns the buyer's sent inquiries and any replies.
//
// @Summary      Buyer inbox
// @Tags         messages
// @Produce      json
// @Success      200  {object}  messagesResponse
// @Router       /messages/buyer [get]
func (h *MessageHandler) BuyerInbox(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.ListForBuyer(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: msgs})
}

// AgentInbox returns inquiries addressed to the acting agent.
//
// @Summary      Agent inbox
// @Tags         messages
// @Produce      json
// @Success      200  {object}  messagesResponse
// @Router       /messages/agent [get]
func (h *MessageHandler) AgentInbox(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.ListForAgent(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messagesResponse{Messages: msgs})
}

// View returns one inquiry addressed to the acting agent.
//
// @Summary      View an inquiry
// @Tags         messages
// @Produce      json
// @Param        id  path  string  true  "Message ID"
// @Success      200  {object}  singleMessageResponse
// @Failure      404  {object}  map[string]string
// @Router       /messages/view/{id} [get]
func (h *MessageHandler) View(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	m, err := h.service.View(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, singleMessageResponse{Message: m})
}

// Reply answers an inquiry addressed to the acting agent.
//
// @Summary      Reply to an inquiry
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Message ID"
// @Param        body  body      replyRequest  true  "Reply"
// @Success      200   {object}  singleMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /messages/reply/{id} [post]
func (h *MessageHandler) Reply(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	m, err := h.service.Reply(c.Request().Context(), user, c.Param("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, singleMessageResponse{Message: m})
}
