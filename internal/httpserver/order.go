package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "place_order_error", "invalid body", err)
	}

	order, err := h.Svc.PlaceOrder(ctx, callerFrom(c), req)
	if err != nil {
		return httpError(l, "place_order_error", err)
	}

	l.Info("place_order_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusCreated, transport.PlaceOrderResponse{Success: true, OrderID: order.ID})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.ListOrders(ctx, callerFrom(c), c.QueryParam("status"), c.QueryParam("user_id"))
	if err != nil {
		return httpError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_order_error", "id is not a number", err)
	}

	order, err := h.Svc.GetOrder(ctx, callerFrom(c), id)
	if err != nil {
		return httpError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) TransitionOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.transition")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "transition_order_error", "id is not a number", err)
	}
	var req transport.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "transition_order_error", "invalid body", err)
	}

	order, err := h.Svc.TransitionOrder(ctx, callerFrom(c), id, req.Status)
	if err != nil {
		return httpError(l, "transition_order_error", err)
	}

	l.Info("transition_order_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_order_error", "id is not a number", err)
	}
	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		return httpError(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}
