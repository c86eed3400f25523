// Package v1 provides the public HTTP API of the site backend.
package v1

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/teconavi/alitaramdemo2/internal/consultation"
	"github.com/teconavi/alitaramdemo2/internal/domain"
	"github.com/teconavi/alitaramdemo2/internal/service"
	"github.com/teconavi/alitaramdemo2/internal/session"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the public routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Catalogue and static content
	e.GET("/v1/catalog/products", h.ListProducts)
	e.GET("/v1/catalog/products/:product_id", h.GetProduct)
	e.GET("/v1/content", h.GetContent)

	// Sessions
	e.POST("/v1/sessions", h.CreateSession)
	e.DELETE("/v1/sessions/:session_id", h.EndSession)
	e.GET("/v1/sessions/:session_id/state", h.GetState)

	// Chat
	e.POST("/v1/sessions/:session_id/chat/open", h.OpenChat)
	e.POST("/v1/sessions/:session_id/chat/close", h.CloseChat)
	e.POST("/v1/sessions/:session_id/chat/start", h.StartChat)
	e.POST("/v1/sessions/:session_id/chat/topic", h.ChatAboutTopic)
	e.GET("/v1/sessions/:session_id/chat/messages", h.ListMessages)
	e.POST("/v1/sessions/:session_id/chat/messages", h.SendMessage)

	// Views
	e.POST("/v1/sessions/:session_id/products/:product_id/open", h.OpenProduct)
	e.POST("/v1/sessions/:session_id/products/:product_id/chat", h.ChatAboutProduct)
	e.POST("/v1/sessions/:session_id/products/close", h.CloseProduct)
	e.POST("/v1/sessions/:session_id/products/consult", h.ConsultFromProduct)
	e.POST("/v1/sessions/:session_id/about/open", h.OpenAbout)
	e.POST("/v1/sessions/:session_id/about/close", h.CloseAbout)

	// Consultation
	e.POST("/v1/sessions/:session_id/consultation", h.OpenConsultation)
	e.DELETE("/v1/sessions/:session_id/consultation", h.CloseConsultation)
	e.GET("/v1/sessions/:session_id/consultation", h.GetConsultation)
	e.PATCH("/v1/sessions/:session_id/consultation", h.UpdateConsultation)
	e.POST("/v1/sessions/:session_id/consultation/next", h.NextConsultationStep)
	e.POST("/v1/sessions/:session_id/consultation/back", h.PreviousConsultationStep)
	e.POST("/v1/sessions/:session_id/consultation/review", h.ReviewConsultation)
	e.POST("/v1/sessions/:session_id/consultation/submit", h.SubmitConsultation)
}

// Validator adapts go-playground/validator to echo.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request body validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate validates a request DTO.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func (h *Handler) session(c echo.Context) (*session.Session, error) {
	return h.service.GetSession(c.Param("session_id"))
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	return c.Validate(req)
}

var errInvalidBody = errors.New("invalid request body")

// respondError maps domain errors to HTTP statuses.
func respondError(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	var blocked *consultation.BlockedError

	switch {
	case errors.As(err, &blocked):
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   err.Error(),
			"step":    blocked.Step,
			"reasons": blocked.Reasons,
		})
	case errors.As(err, &validationErrs), errors.Is(err, errInvalidBody),
		errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrUnknownTopic):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrNoConsultation),
		errors.Is(err, domain.ErrNoDetailOpen):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrBusy),
		errors.Is(err, domain.ErrNoNextStep),
		errors.Is(err, domain.ErrNoPreviousStep),
		errors.Is(err, domain.ErrNotAtReview):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
