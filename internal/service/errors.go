package service

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

var (
	ErrEmptyCart       = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrOrderNotFound   = fmt.Errorf("%w: order not found", ErrNotFound)
	ErrPaymentNotFound = fmt.Errorf("%w: payment not found", ErrNotFound)
	ErrMenuNotFound    = fmt.Errorf("%w: menu item not found", ErrNotFound)
	ErrVoucherNotFound = fmt.Errorf("%w: voucher not found", ErrNotFound)
	ErrAlreadyVerified = fmt.Errorf("%w: payment already verified", ErrConflict)
	ErrPaymentSettled  = fmt.Errorf("%w: payment already settled", ErrConflict)
	ErrDuplicate       = fmt.Errorf("%w: already exists", ErrConflict)
	ErrBadCredentials  = errors.New("invalid email or password")
)

type ItemNotFoundError struct {
	MenuID uint
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.MenuID)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError carries the stock left at the moment of the check.
type InsufficientStockError struct {
	MenuID    uint
	Name      string
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stok %s tidak mencukupi (sisa %d)", e.Name, e.Remaining)
}

func (e *InsufficientStockError) Unwrap() error { return ErrConflict }

type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrConflict }
