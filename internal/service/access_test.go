package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role  models.Role
		op    Operation
		allow bool
	}{
		{models.RoleAdmin, OpManageMenu, true},
		{models.RoleAdmin, OpDeleteOrder, true},
		{models.RoleAdmin, OpVerifyPayment, true},
		{models.RoleCashier, OpTransition, true},
		{models.RoleCashier, OpVerifyPayment, true},
		{models.RoleCashier, OpDeleteOrder, false},
		{models.RoleCashier, OpForceComplete, false},
		{models.RoleAdmin, OpForceComplete, true},
		{models.RoleCashier, OpManageMenu, false},
		{models.RoleCustomer, OpPlaceOrder, true},
		{models.RoleCustomer, OpSubmitPayment, true},
		{models.RoleCustomer, OpTransition, false},
		{models.RoleCustomer, OpVerifyPayment, false},
		{models.RoleCustomer, OpManageUsers, false},
		{models.Role("Barista"), OpViewOrders, false},
		{models.RoleAdmin, Operation("menu.burn"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.op), func(t *testing.T) {
			t.Parallel()
			err := Authorize(tt.role, tt.op)
			if tt.allow {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestCallerFromClaims(t *testing.T) {
	t.Parallel()

	c, err := CallerFromClaims("7", "Kasir", "Sari")
	require.NoError(t, err)
	require.NotNil(t, c.UserID)
	assert.EqualValues(t, 7, *c.UserID)
	assert.Equal(t, models.RoleCashier, c.Role)
	assert.True(t, c.Role.Staff())

	_, err = CallerFromClaims("7", "root", "x")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = CallerFromClaims("abc", "Admin", "x")
	assert.ErrorIs(t, err, ErrForbidden)
}
