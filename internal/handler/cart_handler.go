package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimarket/internal/errors"
	"agrimarket/internal/service"
)

// CartHandler exposes the placeholder cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get godoc
// @Summary Get the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cartService.Get(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cart})
}

// Add godoc
// @Summary Add an item to the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StubNotice
// @Router /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	notice, err := h.cartService.Add(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// UpdateItem godoc
// @Summary Update a cart item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} service.StubNotice
// @Router /cart/{itemId} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	notice, err := h.cartService.UpdateItem(c.Request().Context(), CurrentUser(c).ID, c.Param("itemId"))
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// RemoveItem godoc
// @Summary Remove a cart item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 200 {object} service.StubNotice
// @Router /cart/{itemId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	notice, err := h.cartService.RemoveItem(c.Request().Context(), CurrentUser(c).ID, c.Param("itemId"))
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// Clear godoc
// @Summary Clear the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StubNotice
// @Router /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	notice, err := h.cartService.Clear(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// Summary godoc
// @Summary Get cart totals
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /cart/summary [get]
func (h *CartHandler) Summary(c echo.Context) error {
	summary, err := h.cartService.Summary(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": summary})
}
