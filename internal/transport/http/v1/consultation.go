package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teconavi/alitaramdemo2/internal/domain"
)

// OpenConsultationRequest represents the body of POST .../consultation.
type OpenConsultationRequest struct {
	ProductID string `json:"product_id" validate:"omitempty,max=64"`
}

// UpdateConsultationRequest is a partial form update. Absent fields are left untouched.
type UpdateConsultationRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=120"`
	Phone         *string `json:"phone" validate:"omitempty,max=32"`
	Province      *string `json:"province" validate:"omitempty,oneof=ON BC QC AB Other"`
	MobilityLevel *string `json:"mobility_level" validate:"omitempty,oneof=Independent 'Uses Cane' Walker Wheelchair Bedbound"`
	Condition     *string `json:"condition" validate:"omitempty,max=200"`
	Details       *string `json:"details" validate:"omitempty,max=2000"`
}

func (r UpdateConsultationRequest) patch() domain.ConsultationPatch {
	p := domain.ConsultationPatch{
		Name:      r.Name,
		Phone:     r.Phone,
		Province:  r.Province,
		Condition: r.Condition,
		Details:   r.Details,
	}
	if r.MobilityLevel != nil {
		level := domain.MobilityLevel(*r.MobilityLevel)
		p.MobilityLevel = &level
	}
	return p
}

// OpenConsultation starts a fresh consultation draft.
// POST /v1/sessions/:session_id/consultation
func (h *Handler) OpenConsultation(c echo.Context) error {
	var req OpenConsultationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.OpenConsultation(req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// CloseConsultation cancels the draft.
// DELETE /v1/sessions/:session_id/consultation
func (h *Handler) CloseConsultation(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.CloseConsultation())
}

// GET /v1/sessions/:session_id/consultation
func (h *Handler) GetConsultation(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.Consultation()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// PATCH /v1/sessions/:session_id/consultation
func (h *Handler) UpdateConsultation(c echo.Context) error {
	var req UpdateConsultationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.UpdateConsultation(req.patch())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// NextConsultationStep advances the form when the step gate allows it.
// POST /v1/sessions/:session_id/consultation/next
func (h *Handler) NextConsultationStep(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.NextConsultationStep(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// POST /v1/sessions/:session_id/consultation/back
func (h *Handler) PreviousConsultationStep(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.PreviousConsultationStep()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// POST /v1/sessions/:session_id/consultation/review
func (h *Handler) ReviewConsultation(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.ReviewConsultation()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// SubmitConsultation sends the request and closes the form.
// POST /v1/sessions/:session_id/consultation/submit
func (h *Handler) SubmitConsultation(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	receipt, err := sess.SubmitConsultation(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}
