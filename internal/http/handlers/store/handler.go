package store

import "github.com/ministore-next/internal/provider"

// Handler serves the storefront: pages, the cart endpoints, and shopper auth.
type Handler struct {
	*provider.Container
}

// New creates a storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
