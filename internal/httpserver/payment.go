package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) SubmitPaymentProof(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.submit")

	var req transport.SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "submit_payment_error", "invalid body", err)
	}

	payment, err := h.Svc.SubmitPaymentProof(ctx, callerFrom(c), req)
	if err != nil {
		return httpError(l, "submit_payment_error", err)
	}

	l.Info("submit_payment_success", "order_id", req.OrderID, "payment_id", payment.ID)
	return c.JSON(http.StatusCreated, payment)
}

// VerifyPayment records the cashier's decision. verified_by defaults to the
// name on the caller's token.
func (h *PaymentHTTP) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.verify")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "verify_payment_error", "id is not a number", err)
	}
	var req transport.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "verify_payment_error", "invalid body", err)
	}

	verifier := req.VerifiedBy
	if verifier == "" {
		verifier = callerFrom(c).Name
	}

	payment, err := h.Svc.VerifyPayment(ctx, id, req.Status, verifier)
	if err != nil {
		return httpError(l, "verify_payment_error", err)
	}

	l.Info("verify_payment_success", "payment_id", id, "status", payment.Status)
	return c.JSON(http.StatusOK, payment)
}
