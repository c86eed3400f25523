package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// TextRequest carries user text.
type TextRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// TopicRequest names one of the quick topics.
type TopicRequest struct {
	Topic string `json:"topic" validate:"required,max=100"`
}

// SendMessageResponse represents the response for POST .../chat/messages.
// Reply is only set when the caller waited for it.
type SendMessageResponse struct {
	Message domain.ChatMessage  `json:"message"`
	Reply   *domain.ChatMessage `json:"reply,omitempty"`
}

// POST /v1/sessions/:session_id/chat/open
func (h *Handler) OpenChat(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.OpenChat())
}

// POST /v1/sessions/:session_id/chat/close
func (h *Handler) CloseChat(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.CloseChat())
}

// StartChat opens the chat with a seed message that is sent once the conversation is idle.
// POST /v1/sessions/:session_id/chat/start
func (h *Handler) StartChat(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	ui, err := sess.StartChat(req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ui)
}

// ChatAboutTopic starts the chat from a quick topic.
// POST /v1/sessions/:session_id/chat/topic
func (h *Handler) ChatAboutTopic(c echo.Context) error {
	var req TopicRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	ui, err := sess.ChatAboutTopic(req.Topic)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ui)
}

// ListMessages returns the stored message log.
// GET /v1/sessions/:session_id/chat/messages
func (h *Handler) ListMessages(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	messages, err := sess.Messages(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
		"status":   sess.State().ChatStatus,
	})
}

// SendMessage submits user text. With ?wait=true the response carries the assistant reply.
// POST /v1/sessions/:session_id/chat/messages
func (h *Handler) SendMessage(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	msg, done, err := sess.SendMessage(req.Text)
	if err != nil {
		return respondError(c, err)
	}

	if wait, _ := strconv.ParseBool(c.QueryParam("wait")); !wait {
		return c.JSON(http.StatusAccepted, SendMessageResponse{Message: msg})
	}

	// The reply still lands in the log if the client goes away.
	select {
	case reply := <-done:
		return c.JSON(http.StatusOK, SendMessageResponse{Message: msg, Reply: &reply})
	case <-c.Request().Context().Done():
		return c.JSON(http.StatusAccepted, SendMessageResponse{Message: msg})
	}
}
