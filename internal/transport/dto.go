package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

type PatchMenuItemRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// CartLine is one entry of a placement request. Price and Name are what the
// client displayed; the engine ignores both.
type CartLine struct {
	ID       uint            `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
}

type PlaceOrderRequest struct {
	Items         []CartLine `json:"items"`
	UserID        *uint      `json:"user_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	TableNumber   *string    `json:"table_number"`
	TypeOrder     string     `json:"type_order"`
	PaymentMethod string     `json:"payment_method"`
}

type PlaceOrderResponse struct {
	Success bool `json:"success"`
	OrderID uint `json:"orderId"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type SubmitPaymentRequest struct {
	OrderID      uint   `json:"order_id"`
	PaymentProof string `json:"payment_proof"`
	Method       string `json:"method"`
}

type VerifyPaymentRequest struct {
	Status     string `json:"status"`
	VerifiedBy string `json:"verified_by"`
}

type ApplyVoucherRequest struct {
	Code       string          `json:"code"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type ApplyVoucherResponse struct {
	Code        string          `json:"code"`
	Discount    decimal.Decimal `json:"discount"`
	TotalBefore decimal.Decimal `json:"total_before"`
	TotalAfter  decimal.Decimal `json:"total_after"`
}

type CreateVoucherRequest struct {
	Code        string           `json:"code"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase decimal.Decimal  `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	UsageLimit  *int             `json:"usage_limit"`
	IsActive    *bool            `json:"is_active"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrderItemView struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Image    string          `json:"image"`
}

type OrderView struct {
	ID            uint               `json:"id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	TypeOrder     models.TypeOrder   `json:"type_order"`
	TableNumber   *string            `json:"table_number"`
	Status        models.OrderStatus `json:"status"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
	UserID        *uint              `json:"user_id"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []OrderItemView    `json:"items"`
	Payment       *models.Payment    `json:"payment"`
}

// NewOrderView reshapes an order for the client. images maps menu id to the
// current image path; items whose menu entry is gone get an empty image.
func NewOrderView(o models.Order, images map[uint]string) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		price := it.Subtotal
		if it.Quantity > 0 {
			price = it.Subtotal.Div(decimal.NewFromInt(int64(it.Quantity)))
		}
		items = append(items, OrderItemView{
			ID:       it.MenuID,
			Name:     it.MenuName,
			Price:    price,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
			Image:    images[it.MenuID],
		})
	}
	return OrderView{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TypeOrder:     o.TypeOrder,
		TableNumber:   o.TableNumber,
		Status:        o.Status,
		TotalPrice:    o.TotalPrice,
		UserID:        o.UserID,
		CreatedAt:     o.CreatedAt,
		Items:         items,
		Payment:       o.Payment,
	}
}
