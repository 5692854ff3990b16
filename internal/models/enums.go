package models

import "fmt"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPaid      OrderStatus = "Paid"
	OrderServed    OrderStatus = "Served"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderPaid, OrderServed, OrderCompleted, OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type TypeOrder string

const (
	DineIn   TypeOrder = "DineIn"
	TakeAway TypeOrder = "TakeAway"
)

func ParseTypeOrder(s string) (TypeOrder, error) {
	switch t := TypeOrder(s); t {
	case DineIn, TakeAway:
		return t, nil
	}
	return "", fmt.Errorf("unknown type_order %q", s)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodQRIS PaymentMethod = "QRIS"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case MethodCash, MethodQRIS:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

type VoucherType string

const (
	VoucherPercentage VoucherType = "Percentage"
	VoucherFixed      VoucherType = "Fixed"
)

// Role is the closed set of account roles. The string values are the ones
// stored in session tokens.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCashier  Role = "Kasir"
	RoleCustomer Role = "Pelanggan"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleCashier, RoleCustomer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Staff reports whether the role sells at the counter.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleCashier
}
