package models

import (
	"github.com/ministore-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultUser creates a demo shopper account when the users table is
// empty, so a fresh install can exercise the login-gated add-to-cart flow.
func InitDefaultUser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "customer@example.com"
	}
	if password == "" {
		password = "customer123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Name:         "Demo Customer",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "customer123" {
		logger.Warnw("default_user_created_with_default_password", "email", email)
	} else {
		logger.Warnw("default_user_created", "email", email, "password_hidden", true)
	}
	return nil
}
