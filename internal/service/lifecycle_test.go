package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

var allStatuses = []models.OrderStatus{
	models.OrderPending,
	models.OrderPaid,
	models.OrderServed,
	models.OrderCompleted,
	models.OrderCancelled,
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[[2]models.OrderStatus]bool{
		{models.OrderPending, models.OrderPaid}:      true,
		{models.OrderPending, models.OrderCancelled}: true,
		{models.OrderPaid, models.OrderServed}:       true,
		{models.OrderPaid, models.OrderCancelled}:    true,
		{models.OrderPaid, models.OrderCompleted}:    true,
		{models.OrderServed, models.OrderCompleted}:  true,
		{models.OrderServed, models.OrderCancelled}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]models.OrderStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoEdges(t *testing.T) {
	t.Parallel()

	for _, from := range []models.OrderStatus{models.OrderCompleted, models.OrderCancelled} {
		assert.True(t, from.Terminal())
		for _, to := range allStatuses {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
