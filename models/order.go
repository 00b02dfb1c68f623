package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	// Checkout only ever writes "pending"; the other two states are driven
	// by external fulfilment systems.
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	OrderRef   string          `gorm:"uniqueIndex" json:"order_ref"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderItem snapshots a cart line at checkout time. Price is the unit price
// of the product when the order was placed, not a live reference.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index" json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}
