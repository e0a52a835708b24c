package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/auth"
	"clubhouse/internal/service"
)

// MessageHandler handles the message board pages.
type MessageHandler struct {
	messages service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messages service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Home renders the message list. The route sits behind RequireLogin.
func (h *MessageHandler) Home(c echo.Context) error {
	status := "guest"
	if user, ok := auth.CurrentUser(c); ok {
		status = user.DisplayStatus()
	}

	views, err := h.messages.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Status":   status,
		"Messages": views,
	})
}

// ShowNewMessage renders the empty message form.
func (h *MessageHandler) ShowNewMessage(c echo.Context) error {
	return c.Render(http.StatusOK, "newmessage.html", formPage{Form: &MessageForm{}})
}

// CreateMessage stores a new message for the authenticated user. The route
// sits behind RequireLogin, so an author is always present here.
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var form MessageForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.normalize()

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "newmessage.html", formPage{Errors: formErrors(err), Form: &form})
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	if err := h.messages.Create(c.Request().Context(), form.Title, form.Body, user.ID); err != nil {
		c.Logger().Errorf("create message: %v", err)
		return c.Render(http.StatusOK, "newmessage.html", formPage{
			Errors: []string{"An error occurred during sending message. Please try again."},
			Form:   &form,
		})
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteMessage removes a message by id. The route performs no ownership or
// role check: anyone can moderate the board.
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// A malformed id deletes nothing.
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := h.messages.Delete(c.Request().Context(), uint(id)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
