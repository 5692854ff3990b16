package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name        string          `gorm:"not null"                           json:"name"`
	Category    string          `gorm:"index;not null;default:''"          json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"        json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock>=0"  json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	CustomerName  string          `gorm:"not null"                     json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	TypeOrder     TypeOrder       `gorm:"type:varchar(16);not null"    json:"type_order"`
	TableNumber   *string         `json:"table_number"`
	Status        OrderStatus     `gorm:"type:varchar(16);index;not null" json:"status"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"total_price"`
	UserID        *uint           `gorm:"index"                        json:"user_id"`
	CreatedAt     time.Time       `gorm:"index"                        json:"created_at"`

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// OrderItem keeps the name and subtotal captured at order time; MenuID is a
// plain reference so menu edits and deletes never touch past orders.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	OrderID  uint            `gorm:"index;not null"                    json:"order_id"`
	MenuID   uint            `gorm:"index;not null"                    json:"menu_id"`
	MenuName string          `gorm:"not null;default:''"               json:"menu_name"`
	Quantity int             `gorm:"not null;check:quantity>0"         json:"quantity"`
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null"       json:"subtotal"`
}

type Payment struct {
	ID           uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	OrderID      uint            `gorm:"uniqueIndex;not null"            json:"order_id"`
	Method       PaymentMethod   `gorm:"type:varchar(16);not null"       json:"method"`
	Status       PaymentStatus   `gorm:"type:varchar(16);not null"       json:"status"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"     json:"amount"`
	PaymentProof *string         `json:"payment_proof"`
	VerifiedAt   *time.Time      `json:"verified_at"`
	VerifiedBy   *string         `json:"verified_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Voucher struct {
	ID          uint             `gorm:"primaryKey;autoIncrement"    json:"id"`
	Code        string           `gorm:"uniqueIndex;not null"        json:"code"`
	Type        VoucherType      `gorm:"type:varchar(16);not null"   json:"type"`
	Value       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	MinPurchase decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"min_purchase"`
	MaxDiscount *decimal.Decimal `gorm:"type:decimal(12,2)"          json:"max_discount"`
	StartDate   time.Time        `gorm:"not null"                    json:"start_date"`
	EndDate     time.Time        `gorm:"not null"                    json:"end_date"`
	UsageLimit  *int             `json:"usage_limit"`
	UsedCount   int              `gorm:"not null;default:0"          json:"used_count"`
	IsActive    bool             `gorm:"not null"                    json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string    `gorm:"not null"                  json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{&MenuItem{}, &Order{}, &OrderItem{}, &Payment{}, &Voucher{}, &User{}}
}
