package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type PaymentService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Now    func() time.Time
}

// SubmitPaymentProof attaches a proof to the order's payment and marks a
// pending order as paid. A payment that already succeeded is left alone. A
// failed payment is reset to Pending even though its order was cancelled.
func (s *PaymentService) SubmitPaymentProof(ctx context.Context, caller Caller, req transport.SubmitPaymentRequest) (*models.Payment, error) {
	if req.OrderID == 0 {
		return nil, fmt.Errorf("%w: order_id is required", ErrValidation)
	}
	proof := strings.TrimSpace(req.PaymentProof)
	if proof == "" {
		return nil, fmt.Errorf("%w: payment_proof is required", ErrValidation)
	}
	method := models.MethodQRIS
	if req.Method != "" {
		m, err := models.ParsePaymentMethod(req.Method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		method = m
	}

	var payment *models.Payment
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.LockOrder(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := checkSubmitter(caller, order); err != nil {
			return err
		}
		payment, err = tx.LockPaymentByOrder(ctx, order.ID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if order.Status.Terminal() {
				return &InvalidTransitionError{From: order.Status, To: models.OrderPaid}
			}
			payment = &models.Payment{
				OrderID:      order.ID,
				Method:       method,
				Status:       models.PaymentPending,
				Amount:       order.TotalPrice,
				PaymentProof: &proof,
			}
			if err := tx.CreatePayment(ctx, payment); err != nil {
				return err
			}
		case err != nil:
			return err
		case payment.Status == models.PaymentSuccess:
			return ErrPaymentSettled
		case order.Status.Terminal() && !reuploadable(order, payment):
			return &InvalidTransitionError{From: order.Status, To: models.OrderPaid}
		default:
			payment.Method = method
			payment.Status = models.PaymentPending
			payment.Amount = order.TotalPrice
			payment.PaymentProof = &proof
			payment.VerifiedAt = nil
			payment.VerifiedBy = nil
			if err := tx.SavePayment(ctx, payment); err != nil {
				return err
			}
		}

		if order.Status == models.OrderPending {
			ok, err := tx.CompareAndSetStatus(ctx, order.ID, models.OrderPending, models.OrderPaid)
			if err != nil {
				return err
			}
			if !ok {
				return &InvalidTransitionError{From: order.Status, To: models.OrderPaid}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, req.OrderID, map[string]any{
		"type":      "payment_submitted",
		"orderID":   req.OrderID,
		"paymentID": payment.ID,
		"method":    payment.Method,
	})
	return payment, nil
}

// A rejected proof cancels its order; the customer may still upload a new one.
func reuploadable(order *models.Order, payment *models.Payment) bool {
	return order.Status == models.OrderCancelled && payment.Status == models.PaymentFailed
}

// Staff may submit for any order; customers only for their own; anonymous
// callers only for guest orders.
func checkSubmitter(caller Caller, order *models.Order) error {
	switch {
	case caller.Role.Staff():
		return nil
	case caller.Anonymous():
		if order.UserID == nil {
			return nil
		}
	default:
		if caller.owns(order.UserID) {
			return nil
		}
	}
	return fmt.Errorf("%w: order %d belongs to another customer", ErrForbidden, order.ID)
}

// VerifyPayment settles a pending payment. Success completes the order and
// failure cancels it, whatever status the order is in.
func (s *PaymentService) VerifyPayment(ctx context.Context, id uint, outcome, verifier string) (*models.Payment, error) {
	status := models.PaymentStatus(outcome)
	if status != models.PaymentSuccess && status != models.PaymentFailed {
		return nil, fmt.Errorf("%w: status must be Success or Failed", ErrValidation)
	}

	var (
		payment     *models.Payment
		orderStatus models.OrderStatus
	)
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		payment, err = tx.LockPayment(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.Status != models.PaymentPending {
			return ErrAlreadyVerified
		}

		payment.Status = status
		if status == models.PaymentSuccess {
			now := nowFunc(s.Now)
			payment.VerifiedAt = &now
			orderStatus = models.OrderCompleted
			if verifier = strings.TrimSpace(verifier); verifier != "" {
				payment.VerifiedBy = &verifier
			}
		} else {
			payment.VerifiedAt = nil
			payment.VerifiedBy = nil
			orderStatus = models.OrderCancelled
		}
		if err := tx.SavePayment(ctx, payment); err != nil {
			return err
		}

		if err := tx.SetStatus(ctx, payment.OrderID, orderStatus); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, payment.OrderID, map[string]any{
		"type":        "payment_verified",
		"orderID":     payment.OrderID,
		"paymentID":   payment.ID,
		"status":      payment.Status,
		"orderStatus": orderStatus,
	})
	return payment, nil
}
