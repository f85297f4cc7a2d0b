package models

import "time"

type OrderStatus string

// Status casing follows the wire contract the clients already use.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusBilling   OrderStatus = "Billing"
	OrderStatusReady     OrderStatus = "Ready"
)

// Order: a customer order, optionally bound to a table. OrderID is the
// human-readable identifier printed on receipts, distinct from the row id.
type Order struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrderID string `gorm:"size:20;uniqueIndex;not null" json:"order_id"`

	TableID *uint  `gorm:"index" json:"table_id"`
	Table   *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderRef" json:"items"`

	// Caller-supplied; not recomputed from the items.
	Amount float64 `gorm:"not null" json:"amount"`

	Status OrderStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderRef uint    `gorm:"index;not null" json:"-"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"` // unit price
}
