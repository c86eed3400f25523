package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListProducts returns the whole catalogue in display order.
// GET /v1/catalog/products
func (h *Handler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": h.service.ListProducts(),
	})
}

// GetProduct returns one product.
// GET /v1/catalog/products/:product_id
func (h *Handler) GetProduct(c echo.Context) error {
	product, err := h.service.GetProduct(c.Param("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GET /v1/content
func (h *Handler) GetContent(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Content())
}
