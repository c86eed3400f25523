package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// CreateSessionResponse represents the response for POST /v1/sessions.
type CreateSessionResponse struct {
	SessionID string              `json:"session_id"`
	CreatedAt time.Time           `json:"created_at"`
	State     domain.SessionState `json:"state"`
}

// CreateSession starts a new browser session.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	sess, err := h.service.CreateSession(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreateSessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
		State:     sess.State(),
	})
}

// EndSession drops the session and its message log.
// DELETE /v1/sessions/:session_id
func (h *Handler) EndSession(c echo.Context) error {
	if err := h.service.EndSession(c.Param("session_id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/sessions/:session_id/state
func (h *Handler) GetState(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.State())
}
