package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered shopper. Adding to the cart requires a logged-in
// session, so the store keeps a minimal user table for the login gate.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
