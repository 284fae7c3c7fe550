package service

import (
	"strings"

	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserAuthService verifies shopper credentials for the login gate.
type UserAuthService struct {
	userRepo repository.UserRepository
}

// NewUserAuthService creates a user auth service.
func NewUserAuthService(userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{userRepo: userRepo}
}

// Authenticate checks email and password, returning the user on success.
// Unknown emails and wrong passwords report the same error.
func (s *UserAuthService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
