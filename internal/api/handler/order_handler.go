package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurelia-jewels/storefront-api/internal/api/metrics"
	"github.com/aurelia-jewels/storefront-api/internal/core/domain"
	"github.com/aurelia-jewels/storefront-api/internal/core/ports"
)

// OrderHandler handles checkout and order retrieval.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create handles POST /api/orders. Runs behind OptionalAuth: authenticated
// callers get the order associated with their account, everyone else checks
// out as a guest.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "validation_error")
	}

	userID := optionalCallerID(c)
	order, err := h.orders.CreateOrder(c.Request().Context(), toCreateOrderInput(req, userID))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyOrder) {
			return failWith(c, http.StatusBadRequest, "Missing required order fields", "validation_error")
		}
		return serverError(c, err, "Server error placing order")
	}

	channel := "guest"
	if userID != "" {
		channel = "account"
	}
	metrics.OrdersCreatedTotal.WithLabelValues(channel).Inc()
	return ok(c, http.StatusCreated, order, "Order placed successfully")
}

// ListForUser handles GET /api/orders/user/:userId.
//
// @Summary      List a user's orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  envelope
// @Failure      403     {object}  envelope
// @Failure      500     {object}  envelope
// @Router       /api/orders/user/{userId} [get]
func (h *OrderHandler) ListForUser(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListUserOrders(c.Request().Context(), id, c.Param("userId"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return fail(c, http.StatusForbidden, "Unauthorized to view these orders")
		}
		return serverError(c, err, "Server error fetching user orders")
	}

	return ok(c, http.StatusOK, orders, "User orders fetched successfully")
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return fail(c, http.StatusBadRequest, "Invalid order ID")
		case errors.Is(err, domain.ErrOrderNotFound):
			return fail(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrForbidden):
			return fail(c, http.StatusForbidden, "Unauthorized to view this order")
		}
		return serverError(c, err, "Server error fetching order")
	}

	return ok(c, http.StatusOK, order, "Order fetched successfully")
}

// UpdateStatus handles PUT /api/orders/:id/status — the fulfillment hook
// driving the order lifecycle. Any authenticated caller may transition an
// order; there is no admin role in this system.
//
// @Summary      Update an order's fulfillment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order id"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	if _, err := callerID(c); err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "validation_error")
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			return fail(c, http.StatusBadRequest, "Invalid order ID")
		case errors.Is(err, domain.ErrOrderNotFound):
			return fail(c, http.StatusNotFound, "Order not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			return fail(c, http.StatusUnprocessableEntity, "Invalid status transition")
		}
		return serverError(c, err, "Server error updating order status")
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(order.Status)).Inc()
	return ok(c, http.StatusOK, order, "Order status updated successfully")
}
