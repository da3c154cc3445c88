package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrimarket/internal/errors"
	"agrimarket/internal/service"
)

// OrderHandler exposes the placeholder order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary Create an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StubNotice
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	notice, err := h.orderService.Create(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// List godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orderService.List(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

// Get godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} service.StubNotice
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	notice, err := h.orderService.Get(c.Request().Context(), CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// UpdateStatus godoc
// @Summary Update an order's status
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} service.StubNotice
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	notice, err := h.orderService.UpdateStatus(c.Request().Context(), CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// UpdatePayment godoc
// @Summary Update an order's payment status
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} service.StubNotice
// @Router /orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c echo.Context) error {
	notice, err := h.orderService.UpdatePayment(c.Request().Context(), CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, notice)
}

// Stats godoc
// @Summary Get order aggregates
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /orders/stats [get]
func (h *OrderHandler) Stats(c echo.Context) error {
	stats, err := h.orderService.Stats(c.Request().Context(), CurrentUser(c).ID)
	if err != nil {
		return errors.MapError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stats})
}
