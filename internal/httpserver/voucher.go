package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type VoucherHTTP struct {
	Svc *service.VoucherService
}

func (h *VoucherHTTP) Apply(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.apply")

	var req transport.ApplyVoucherRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "apply_voucher_error", "invalid body", err)
	}
	res, err := h.Svc.Apply(ctx, req.Code, req.TotalPrice)
	if err != nil {
		return httpError(l, "apply_voucher_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VoucherHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.create")

	var req transport.CreateVoucherRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_voucher_error", "invalid body", err)
	}
	v, err := h.Svc.Create(ctx, req)
	if err != nil {
		return httpError(l, "create_voucher_error", err)
	}

	l.Info("create_voucher_success", "code", v.Code)
	return c.JSON(http.StatusCreated, v)
}

func (h *VoucherHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "voucher.list")

	vouchers, err := h.Svc.List(ctx)
	if err != nil {
		return httpError(l, "list_vouchers_error", err)
	}
	return c.JSON(http.StatusOK, vouchers)
}
