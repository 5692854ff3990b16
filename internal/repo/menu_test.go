package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	gdb, err := db.Open(ctx, db.DriverSQLite, fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(ctx))
	return r
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		stock     int
		qty       int
		wantOK    bool
		wantStock int
	}{
		{name: "enough stock", stock: 5, qty: 2, wantOK: true, wantStock: 3},
		{name: "exact stock", stock: 2, qty: 2, wantOK: true, wantStock: 0},
		{name: "not enough stock", stock: 1, qty: 2, wantOK: false, wantStock: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepo(t)
			item := models.MenuItem{Name: "Latte", Category: "Coffee", Price: decimal.NewFromInt(25000), Stock: tt.stock}
			require.NoError(t, r.CreateMenuItem(ctx, &item))

			ok, err := r.DecrementStock(ctx, item.ID, tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			got, err := r.GetMenuItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStock, got.Stock)
		})
	}
}

func TestDecrementStock_UnknownItem(t *testing.T) {
	r := newRepo(t)

	ok, err := r.DecrementStock(context.Background(), 404, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
