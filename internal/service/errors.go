package service

import "errors"

// Sentinel errors matched with errors.Is at the handler boundary.
var (
	ErrInvalidProduct     = errors.New("invalid product id")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrProductNotFound    = errors.New("product not found")
	ErrLineNotFound       = errors.New("product not in cart")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
