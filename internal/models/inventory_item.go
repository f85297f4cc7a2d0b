package models

import "time"

// InventoryItem: flat stock record. Not linked to orders; no automatic
// stock decrement happens anywhere.
type InventoryItem struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	// Uniqueness of non-empty SKUs is checked by the handler; the column
	// itself stays plain so items without a SKU do not collide.
	SKU      string  `gorm:"size:50;index" json:"sku"`
	Category string  `gorm:"size:50;not null" json:"category"`
	Price    float64 `gorm:"not null" json:"price"`
	Stock    float64 `gorm:"not null;default:0" json:"stock"`
	Unit     string  `gorm:"size:20;not null;default:'pcs'" json:"unit"`
	Supplier string  `gorm:"size:100;not null;default:'Unknown'" json:"supplier"`

	// Flagged as low stock when Stock drops below this.
	LowStockThreshold float64 `gorm:"not null;default:5" json:"low_stock_threshold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
