package service

import (
	"fmt"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

type Operation string

const (
	OpPlaceOrder    Operation = "order.place"
	OpViewOrders    Operation = "order.view"
	OpTransition    Operation = "order.transition"
	OpForceComplete Operation = "order.force_complete"
	OpDeleteOrder   Operation = "order.delete"
	OpSubmitPayment Operation = "payment.submit"
	OpVerifyPayment Operation = "payment.verify"
	OpManageMenu    Operation = "menu.manage"
	OpManageVoucher Operation = "voucher.manage"
	OpManageUsers   Operation = "user.manage"
)

var grants = map[Operation][]models.Role{
	OpPlaceOrder:    {models.RoleAdmin, models.RoleCashier, models.RoleCustomer},
	OpViewOrders:    {models.RoleAdmin, models.RoleCashier, models.RoleCustomer},
	OpSubmitPayment: {models.RoleAdmin, models.RoleCashier, models.RoleCustomer},
	OpTransition:    {models.RoleAdmin, models.RoleCashier},
	OpVerifyPayment: {models.RoleAdmin, models.RoleCashier},
	OpDeleteOrder:   {models.RoleAdmin},
	OpForceComplete: {models.RoleAdmin},
	OpManageMenu:    {models.RoleAdmin},
	OpManageVoucher: {models.RoleAdmin},
	OpManageUsers:   {models.RoleAdmin},
}

// Authorize is the single access decision point. Unknown roles and unknown
// operations are denied.
func Authorize(role models.Role, op Operation) error {
	for _, r := range grants[op] {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q may not perform %s", ErrForbidden, role, op)
}
