package service

import (
	"context"

	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/session"
)

// CartService owns the session-held cart: it validates input, snapshots
// catalog data at add time, and applies every mutation inside the session
// manager's single-writer Update, so an error always means the cart was left
// untouched.
type CartService struct {
	sessions *session.Manager
	products *ProductService
}

// NewCartService creates a cart service.
func NewCartService(sessions *session.Manager, products *ProductService) *CartService {
	return &CartService{sessions: sessions, products: products}
}

// AddResult reports the outcome of an add: the resulting line and whether
// the product was already in the cart (quantity incremented rather than a
// new line inserted).
type AddResult struct {
	Item           models.LineItem
	AlreadyPresent bool
}

// AddItem resolves the product and adds it to the session's cart. Repeated
// adds for the same product increment the quantity.
func (s *CartService) AddItem(ctx context.Context, sid string, productID uint, quantity int) (AddResult, error) {
	if productID == 0 {
		return AddResult{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return AddResult{}, ErrInvalidQuantity
	}

	// Resolve before entering the session lock; the snapshot is taken here
	// and never refreshed afterwards.
	product, err := s.products.GetActiveByID(productID)
	if err != nil {
		return AddResult{}, err
	}
	snapshot := product.Snapshot()

	var result AddResult
	err = s.sessions.Update(ctx, sid, func(d *session.Data) error {
		item, existed := d.Cart.Add(snapshot, quantity)
		result = AddResult{Item: item, AlreadyPresent: existed}
		return nil
	})
	if err != nil {
		return AddResult{}, err
	}
	return result, nil
}

// UpdateResult is the outcome of an absolute quantity set, carrying
// everything the AJAX response needs without the client re-deriving it.
type UpdateResult struct {
	ProductID   uint
	Removed     bool
	NewSubtotal models.Money
	CartTotal   models.Money
	ItemCount   int
}

// SetQuantity overwrites a line's quantity; zero removes the line. A product
// that is not in the cart reports ErrLineNotFound and the cart is not saved.
func (s *CartService) SetQuantity(ctx context.Context, sid string, productID uint, quantity int) (UpdateResult, error) {
	if quantity < 0 {
		return UpdateResult{}, ErrInvalidQuantity
	}

	var result UpdateResult
	err := s.sessions.Update(ctx, sid, func(d *session.Data) error {
		removed, item, ok := d.Cart.SetQuantity(productID, quantity)
		if !ok {
			return ErrLineNotFound
		}
		summary := d.Cart.Summary()
		result = UpdateResult{
			ProductID: productID,
			Removed:   removed,
			CartTotal: summary.Total,
			ItemCount: summary.ItemCount,
		}
		if item != nil {
			result.NewSubtotal = item.Subtotal()
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}
	return result, nil
}

// RemoveItem deletes a line; it is SetQuantity with zero.
func (s *CartService) RemoveItem(ctx context.Context, sid string, productID uint) (UpdateResult, error) {
	return s.SetQuantity(ctx, sid, productID, 0)
}

// Clear empties the session's cart unconditionally.
func (s *CartService) Clear(ctx context.Context, sid string) error {
	return s.sessions.Update(ctx, sid, func(d *session.Data) error {
		d.Cart.Clear()
		return nil
	})
}

// Summary returns the read-only snapshot of the session's cart.
func (s *CartService) Summary(ctx context.Context, sid string) (models.CartSummary, error) {
	var summary models.CartSummary
	err := s.sessions.View(ctx, sid, func(d *session.Data) {
		summary = d.Cart.Summary()
	})
	return summary, err
}
