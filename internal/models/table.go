package models

import "time"

type TableStatus string

const (
	TableStatusFree     TableStatus = "free"
	TableStatusReserved TableStatus = "reserved"
	TableStatusOccupied TableStatus = "occupied"
	TableStatusDirty    TableStatus = "dirty"
)

type BillingStatus string

const (
	BillingStatusPending BillingStatus = "pending"
	BillingStatusPaid    BillingStatus = "paid"
	BillingStatusNone    BillingStatus = "none"
)

// Table: a physical table on the floor. Holds at most one active order;
// the linkage is maintained by the order create/delete handlers.
type Table struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber int         `gorm:"uniqueIndex;not null" json:"table_number"`
	Seats       int         `gorm:"not null" json:"seats"`
	Status      TableStatus `gorm:"size:20;not null;default:'free'" json:"status"`

	OccupiedAt *time.Time `json:"occupied_at"` // guest sitting since
	ReservedAt *time.Time `json:"reserved_at"`

	CurrentOrderAmount float64       `gorm:"not null;default:0" json:"current_order_amount"`
	BillingStatus      BillingStatus `gorm:"size:20;not null;default:'none'" json:"billing_status"`

	ActiveOrderID *uint  `json:"active_order_id"`
	ActiveOrder   *Order `gorm:"foreignKey:ActiveOrderID" json:"active_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
