package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()

	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	gdb, err := db.Open(ctx, db.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(ctx))
	return r
}

func seedMenu(t *testing.T, r *repo.GormRepo, name string, price int64, stock int) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Category: "Coffee", Price: decimal.NewFromInt(price), Stock: stock}
	require.NoError(t, r.CreateMenuItem(context.Background(), &item))
	return item
}

func stockOf(t *testing.T, r *repo.GormRepo, id uint) int {
	t.Helper()
	item, err := r.GetMenuItem(context.Background(), id)
	require.NoError(t, err)
	return item.Stock
}

type recordedEvent struct {
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(_ context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Key: key, Event: event.(map[string]any)})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, fmt.Sprint(e.Event["type"]))
	}
	return out
}

func uintPtr(v uint) *uint { return &v }

func customer(id uint) Caller {
	return Caller{UserID: uintPtr(id), Role: models.RoleCustomer, Name: "Budi"}
}

func manager() Caller {
	return Caller{UserID: uintPtr(1), Role: models.RoleAdmin, Name: "Admin"}
}

func cashier() Caller {
	return Caller{UserID: uintPtr(99), Role: models.RoleCashier, Name: "Sari"}
}
