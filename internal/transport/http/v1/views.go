package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProductOpenRequest represents the body of POST .../products/:product_id/open.
type ProductOpenRequest struct {
	FromChat bool `json:"from_chat"`
}

// OpenProduct shows a product detail view.
// POST /v1/sessions/:session_id/products/:product_id/open
func (h *Handler) OpenProduct(c echo.Context) error {
	var req ProductOpenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	ui, err := sess.OpenProductDetail(c.Param("product_id"), req.FromChat)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ui)
}

// ChatAboutProduct starts the chat with an inquiry about the product.
// POST /v1/sessions/:session_id/products/:product_id/chat
func (h *Handler) ChatAboutProduct(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	ui, err := sess.ChatAboutProduct(c.Param("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ui)
}

// POST /v1/sessions/:session_id/products/close
func (h *Handler) CloseProduct(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.CloseProductDetail())
}

// ConsultFromProduct replaces the open detail view with a consultation for the same product.
// POST /v1/sessions/:session_id/products/consult
func (h *Handler) ConsultFromProduct(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	view, err := sess.ConsultFromDetail()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// POST /v1/sessions/:session_id/about/open
func (h *Handler) OpenAbout(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.OpenAbout())
}

// POST /v1/sessions/:session_id/about/close
func (h *Handler) CloseAbout(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess.CloseAbout())
}
