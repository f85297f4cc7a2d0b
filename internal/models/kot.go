package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type KOTStatus string

const (
	KOTStatusPending   KOTStatus = "pending"
	KOTStatusAccepted  KOTStatus = "accepted"
	KOTStatusPreparing KOTStatus = "preparing"
	KOTStatusReady     KOTStatus = "ready"
	KOTStatusServed    KOTStatus = "served"
)

// KOTItem: kitchen copy of an order line. Prices are intentionally dropped;
// the kitchen only needs what to cook and how many.
type KOTItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// KOTItems is embedded in the ticket row as JSON so the snapshot stays
// frozen even when the order's items are edited afterwards.
type KOTItems []KOTItem

func (items KOTItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *KOTItems) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unexpected type %T for KOTItems", value)
	}
}

// KOT: kitchen order ticket derived from an order. Stage timestamps stay
// null until the ticket reaches that stage.
type KOT struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderRef uint   `gorm:"index;not null" json:"order_id"`
	Order    *Order `gorm:"foreignKey:OrderRef" json:"order,omitempty"`

	TableID *uint  `json:"table_id"` // null for takeaway
	Table   *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`

	Items KOTItems `gorm:"type:jsonb" json:"items"`

	Status KOTStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	PreparingAt *time.Time `json:"preparing_at"`
	ReadyAt     *time.Time `json:"ready_at"`
	ServedAt    *time.Time `json:"served_at"`

	CreatedAt time.Time `json:"created_at"`
}
