package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type fakeIndex struct {
	indexed   map[uint]string
	deleted   []uint
	searchErr error
	hits      []models.MenuItem
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[uint]string{}} }

func (f *fakeIndex) IndexMenuItem(_ context.Context, item *models.MenuItem) error {
	f.indexed[item.ID] = item.Name
	return nil
}

func (f *fakeIndex) DeleteMenuItem(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []models.MenuItem, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	return int64(len(f.hits)), f.hits, nil
}

func TestMenuService_CRUD(t *testing.T) {
	idx := newFakeIndex()
	svc := &MenuService{Repo: newTestRepo(t), Index: idx}
	ctx := context.Background()

	item, err := svc.CreateMenuItem(ctx, transport.CreateMenuItemRequest{
		Name: "Kopi Tubruk", Category: "Coffee", Price: decimal.NewFromInt(15000), Stock: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kopi Tubruk", idx.indexed[item.ID])

	name := "Kopi Tubruk Gula Aren"
	patched, err := svc.PatchMenuItem(ctx, transport.PatchMenuItemRequest{Name: &name}, item.ID)
	require.NoError(t, err)
	assert.Equal(t, name, patched.Name)
	assert.Equal(t, 4, patched.Stock)
	assert.Equal(t, name, idx.indexed[item.ID])

	restocked, err := svc.Restock(ctx, item.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, 10, restocked.Stock)

	total, items, err := svc.ListMenuItems(ctx, "Coffee", 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	total, _, err = svc.ListMenuItems(ctx, "Tea", 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, svc.DeleteMenuItem(ctx, item.ID))
	assert.Equal(t, []uint{item.ID}, idx.deleted)

	_, err = svc.GetMenuItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.ErrorIs(t, svc.DeleteMenuItem(ctx, item.ID), ErrNotFound)
	_, err = svc.Restock(ctx, item.ID, 1)
	assert.ErrorIs(t, err, ErrMenuNotFound)
	_, err = svc.PatchMenuItem(ctx, transport.PatchMenuItemRequest{Name: &name}, item.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuService_Validation(t *testing.T) {
	svc := &MenuService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateMenuItem(ctx, transport.CreateMenuItemRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMenuItem(ctx, transport.CreateMenuItemRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateMenuItem(ctx, transport.CreateMenuItemRequest{Name: "x", Stock: -1})
	assert.ErrorIs(t, err, ErrValidation)

	neg := decimal.NewFromInt(-5)
	_, err = svc.PatchMenuItem(ctx, transport.PatchMenuItemRequest{Price: &neg}, 1)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Restock(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Search(ctx, "  ", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMenuService_SearchFallsBackToDatabase(t *testing.T) {
	idx := newFakeIndex()
	svc := &MenuService{Repo: newTestRepo(t), Index: idx}
	ctx := context.Background()
	seedMenu(t, svc.Repo, "Matcha Latte", 28000, 3)
	seedMenu(t, svc.Repo, "Americano", 20000, 3)

	idx.hits = []models.MenuItem{{ID: 77, Name: "From Index"}}
	total, items, err := svc.Search(ctx, "latte", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "From Index", items[0].Name)

	idx.searchErr = errors.New("cluster down")
	total, items, err = svc.Search(ctx, "LATTE", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Matcha Latte", items[0].Name)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := ParseID("12")
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}
