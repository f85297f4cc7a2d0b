package models

import "time"

type MenuCategory string

const (
	MenuCategoryStarter     MenuCategory = "Starter"
	MenuCategoryMainCourse  MenuCategory = "Main Course"
	MenuCategoryBeverages   MenuCategory = "Beverages"
	MenuCategoryRiceBiryani MenuCategory = "Rice & Biryani"
	MenuCategoryDesserts    MenuCategory = "Desserts"
	MenuCategoryBreads      MenuCategory = "Breads"
)

// ValidMenuCategory reports whether c is one of the fixed category set.
func ValidMenuCategory(c MenuCategory) bool {
	switch c {
	case MenuCategoryStarter, MenuCategoryMainCourse, MenuCategoryBeverages,
		MenuCategoryRiceBiryani, MenuCategoryDesserts, MenuCategoryBreads:
		return true
	}
	return false
}

type MenuItemStatus string

const (
	MenuItemAvailable  MenuItemStatus = "Available"
	MenuItemOutOfStock MenuItemStatus = "Out of Stock"
)

type MenuItem struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Category MenuCategory `gorm:"size:30;not null;index" json:"category"`
	Name     string       `gorm:"size:100;not null" json:"name"`
	Price    float64      `gorm:"not null" json:"price"`

	Variants []MenuItemVariant `gorm:"foreignKey:MenuItemID" json:"variants"`

	Status MenuItemStatus `gorm:"size:20;not null;default:'Available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuItemVariant: a size/portion option, e.g. Small, Medium.
type MenuItemVariant struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID uint    `gorm:"index;not null" json:"-"`
	Name       string  `gorm:"size:50;not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
}
