package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// Empty for PIN-only staff accounts.
	PasswordHash string `gorm:"size:255" json:"-"`

	Role UserRole `gorm:"size:20;not null;default:'staff'" json:"role"`

	Locations []Location `gorm:"many2many:user_locations" json:"locations,omitempty"`

	// Hash of the 4-digit PIN used for shift login.
	PinHash string `gorm:"size:255" json:"-"`

	// Payload encoded into the staff badge QR code.
	QRData string `gorm:"size:100" json:"qr_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
