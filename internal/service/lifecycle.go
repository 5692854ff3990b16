package service

import "github.com/Skotchmaster/coffee_shop/internal/models"

var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending: {models.OrderPaid, models.OrderCancelled},
	models.OrderPaid:    {models.OrderServed, models.OrderCancelled, models.OrderCompleted},
	models.OrderServed:  {models.OrderCompleted, models.OrderCancelled},
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another. Completed and Cancelled have no outgoing edges.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionOp names the permission an edge needs. Completing a paid order
// that was never served is an admin override.
func transitionOp(from, to models.OrderStatus) Operation {
	if from == models.OrderPaid && to == models.OrderCompleted {
		return OpForceComplete
	}
	return OpTransition
}
