package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Now    func() time.Time

	// beforeDecrement runs inside the placement transaction after the order
	// row is written and before stock is taken. Tests use it to move stock
	// underneath the locked read.
	beforeDecrement func(ctx context.Context, tx *repo.GormRepo) error
}

type lineTotal struct {
	menuID uint
	qty    int
}

// aggregateCart folds repeated menu ids into one line, keeping the order in
// which each id first appeared.
func aggregateCart(items []transport.CartLine) ([]lineTotal, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	pos := make(map[uint]int, len(items))
	var lines []lineTotal
	for _, it := range items {
		if it.ID == 0 {
			return nil, fmt.Errorf("%w: item id is required", ErrValidation)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for item %d must be at least 1", ErrValidation, it.ID)
		}
		if i, ok := pos[it.ID]; ok {
			lines[i].qty += it.Quantity
			continue
		}
		pos[it.ID] = len(lines)
		lines = append(lines, lineTotal{menuID: it.ID, qty: it.Quantity})
	}
	return lines, nil
}

// PlaceOrder validates the cart against current stock and prices, records the
// order and decrements stock in one transaction. Staff callers sell at the
// counter, so their orders start Completed with a settled payment.
func (s *OrderService) PlaceOrder(ctx context.Context, caller Caller, req transport.PlaceOrderRequest) (*models.Order, error) {
	lines, err := aggregateCart(req.Items)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customer_name is required", ErrValidation)
	}
	typeOrder, err := models.ParseTypeOrder(req.TypeOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cashier := caller.Role.Staff()
	method := models.MethodCash
	if req.PaymentMethod != "" {
		if method, err = models.ParsePaymentMethod(req.PaymentMethod); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	ids := make([]uint, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.menuID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	now := nowFunc(s.Now)
	order := models.Order{
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		TypeOrder:     typeOrder,
		TableNumber:   req.TableNumber,
		Status:        models.OrderPending,
		UserID:        caller.UserID,
		CreatedAt:     now,
	}
	if cashier {
		order.Status = models.OrderCompleted
	}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		menu, err := tx.LockMenuItems(ctx, ids)
		if err != nil {
			return err
		}

		total := decimal.Zero
		order.Items = make([]models.OrderItem, 0, len(lines))
		for _, ln := range lines {
			item, ok := menu[ln.menuID]
			if !ok {
				return &ItemNotFoundError{MenuID: ln.menuID}
			}
			if item.Stock < ln.qty {
				return &InsufficientStockError{MenuID: item.ID, Name: item.Name, Remaining: item.Stock}
			}
			subtotal := item.Price.Mul(decimal.NewFromInt(int64(ln.qty)))
			total = total.Add(subtotal)
			order.Items = append(order.Items, models.OrderItem{
				MenuID:   item.ID,
				MenuName: item.Name,
				Quantity: ln.qty,
				Subtotal: subtotal,
			})
		}
		order.TotalPrice = total

		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		if s.beforeDecrement != nil {
			if err := s.beforeDecrement(ctx, tx); err != nil {
				return err
			}
		}

		for _, ln := range lines {
			ok, err := tx.DecrementStock(ctx, ln.menuID, ln.qty)
			if err != nil {
				return err
			}
			if !ok {
				return lostStockRace(ctx, tx, menu[ln.menuID])
			}
		}

		if cashier {
			payment := models.Payment{
				OrderID:    order.ID,
				Method:     method,
				Status:     models.PaymentSuccess,
				Amount:     total,
				VerifiedAt: &now,
			}
			if caller.Name != "" {
				payment.VerifiedBy = &caller.Name
			}
			if err := tx.CreatePayment(ctx, &payment); err != nil {
				return err
			}
			order.Payment = &payment
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, order.ID, map[string]any{
		"type":        "order_placed",
		"orderID":     order.ID,
		"status":      order.Status,
		"total_price": order.TotalPrice.String(),
		"items":       len(order.Items),
	})
	return &order, nil
}

// lostStockRace reports the stock as it is now, not as it was when the row
// was locked.
func lostStockRace(ctx context.Context, tx *repo.GormRepo, item models.MenuItem) error {
	current, err := tx.GetMenuItem(ctx, item.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ItemNotFoundError{MenuID: item.ID}
		}
		return err
	}
	return &InsufficientStockError{MenuID: current.ID, Name: current.Name, Remaining: current.Stock}
}

// TransitionOrder moves an order along the lifecycle. The write only lands
// if the status is still the one that was checked.
func (s *OrderService) TransitionOrder(ctx context.Context, caller Caller, id uint, target string) (*models.Order, error) {
	to, err := models.ParseOrderStatus(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var from models.OrderStatus
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		from = order.Status
		if !CanTransition(from, to) {
			return &InvalidTransitionError{From: from, To: to}
		}
		if err := Authorize(caller.Role, transitionOp(from, to)); err != nil {
			return err
		}

		ok, err := tx.CompareAndSetStatus(ctx, id, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidTransitionError{From: from, To: to}
		}

		if to == models.OrderCompleted {
			return s.backfillPayment(ctx, tx, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, id, map[string]any{
		"type":    "order_status_changed",
		"orderID": id,
		"from":    from,
		"to":      to,
	})
	return s.Repo.GetOrder(ctx, id)
}

// backfillPayment records a settled cash payment for orders completed
// without one.
func (s *OrderService) backfillPayment(ctx context.Context, tx *repo.GormRepo, order *models.Order) error {
	n, err := tx.CountPayments(ctx, order.ID)
	if err != nil || n > 0 {
		return err
	}
	now := nowFunc(s.Now)
	return tx.CreatePayment(ctx, &models.Payment{
		OrderID:    order.ID,
		Method:     models.MethodCash,
		Status:     models.PaymentSuccess,
		Amount:     order.TotalPrice,
		VerifiedAt: &now,
	})
}

// DeleteOrder removes the order with its items and payment. Stock is not
// returned to the menu.
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		return tx.DeleteOrder(ctx, id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	publish(ctx, s.Events, id, map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller Caller, id uint) (*transport.OrderView, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !caller.Role.Staff() && !caller.owns(order.UserID) {
		return nil, ErrOrderNotFound
	}

	views, err := s.views(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListOrders returns orders newest first. Customers are always scoped to
// their own orders whatever filter they pass.
func (s *OrderService) ListOrders(ctx context.Context, caller Caller, status, userID string) ([]transport.OrderView, error) {
	var f repo.OrderFilter
	if status != "" {
		st, err := models.ParseOrderStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		f.Status = &st
	}

	if caller.Role.Staff() {
		if userID != "" {
			id, err := ParseID(userID)
			if err != nil {
				return nil, err
			}
			f.UserID = &id
		}
	} else {
		if caller.UserID == nil {
			return nil, fmt.Errorf("%w: sign in to list orders", ErrForbidden)
		}
		f.UserID = caller.UserID
	}

	orders, err := s.Repo.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, orders)
}

func (s *OrderService) views(ctx context.Context, orders []models.Order) ([]transport.OrderView, error) {
	seen := map[uint]bool{}
	var ids []uint
	for _, o := range orders {
		for _, it := range o.Items {
			if !seen[it.MenuID] {
				seen[it.MenuID] = true
				ids = append(ids, it.MenuID)
			}
		}
	}
	menu, err := s.Repo.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	images := make(map[uint]string, len(menu))
	for id, m := range menu {
		images[id] = m.Image
	}

	out := make([]transport.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, transport.NewOrderView(o, images))
	}
	return out, nil
}
