package models

import "time"

type WasteReason string

const (
	WasteReasonOvercooked     WasteReason = "Overcooked"
	WasteReasonExpired        WasteReason = "Expired"
	WasteReasonCustomerReturn WasteReason = "Customer Return"
	WasteReasonExtraPrepared  WasteReason = "Extra Prepared"
	WasteReasonSpoiled        WasteReason = "Spoiled"
	WasteReasonOther          WasteReason = "Other"
)

// ValidWasteReason reports whether r is one of the closed reason set.
func ValidWasteReason(r WasteReason) bool {
	switch r {
	case WasteReasonOvercooked, WasteReasonExpired, WasteReasonCustomerReturn,
		WasteReasonExtraPrepared, WasteReasonSpoiled, WasteReasonOther:
		return true
	}
	return false
}

// WasteRecord: discarded stock. TotalLoss is caller-supplied and stored as
// given, not recomputed from quantity and price.
type WasteRecord struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ItemName string  `gorm:"size:100;not null" json:"item_name"`
	Quantity float64 `gorm:"not null" json:"quantity"`
	Unit     string  `gorm:"size:20;not null;default:'pcs'" json:"unit"`

	PerUnitPrice float64 `gorm:"not null" json:"per_unit_price"`
	TotalLoss    float64 `gorm:"not null" json:"total_loss"`

	WasteDate time.Time   `gorm:"not null" json:"waste_date"`
	Reason    WasteReason `gorm:"size:30;not null" json:"reason"`
	Notes     string      `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
