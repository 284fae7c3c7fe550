package models

// ProductSnapshot is the display and pricing data copied into a cart line at
// add time. Later catalog changes do not touch existing lines; the cart keeps
// showing what the shopper agreed to when they added the product.
type ProductSnapshot struct {
	ProductID        uint   `json:"product_id"`
	Name             string `json:"name"`
	ImagePath        string `json:"image_path"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"short_description"`
	UnitPrice        Money  `json:"unit_price"`
}

// LineItem is one product's presence in a cart. A stored line always has
// Quantity >= 1; a quantity of zero is expressed by removing the line.
type LineItem struct {
	ProductID        uint   `json:"product_id"`
	Name             string `json:"name"`
	ImagePath        string `json:"image_path"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"short_description"`
	UnitPrice        Money  `json:"unit_price"`
	Quantity         int    `json:"quantity"`
}

// Subtotal is UnitPrice times Quantity, always recomputed on demand.
func (li LineItem) Subtotal() Money {
	return li.UnitPrice.Mul(li.Quantity)
}

// Cart is the per-session collection of line items. Lines keep insertion
// order so the cart page renders stably across updates.
type Cart struct {
	Items []LineItem `json:"items"`
}

// LineView is a line item together with its computed subtotal.
type LineView struct {
	LineItem
	Subtotal Money `json:"subtotal"`
}

// CartSummary is the read-only snapshot consumed by the cart view and the
// AJAX responses. ItemCount counts distinct lines, not total units; the
// header badge and cart_item_count use this definition everywhere.
type CartSummary struct {
	Lines     []LineView `json:"lines"`
	Total     Money      `json:"total"`
	ItemCount int        `json:"item_count"`
}

func (c *Cart) index(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Get returns the line for a product, if present.
func (c *Cart) Get(productID uint) (LineItem, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.Items)
}

// Add inserts a new line from the snapshot, or increments the quantity of an
// existing line for the same product. It returns the resulting line and
// whether the product was already in the cart. The caller validates that the
// product id and quantity are positive before calling.
func (c *Cart) Add(snapshot ProductSnapshot, quantity int) (LineItem, bool) {
	if i := c.index(snapshot.ProductID); i >= 0 {
		c.Items[i].Quantity += quantity
		return c.Items[i], true
	}
	item := LineItem{
		ProductID:        snapshot.ProductID,
		Name:             snapshot.Name,
		ImagePath:        snapshot.ImagePath,
		Slug:             snapshot.Slug,
		ShortDescription: snapshot.ShortDescription,
		UnitPrice:        snapshot.UnitPrice,
		Quantity:         quantity,
	}
	c.Items = append(c.Items, item)
	return item, false
}

// SetQuantity overwrites a line's quantity with an absolute value. A quantity
// of zero removes the line entirely. The caller validates quantity >= 0. When
// the product is not in the cart, ok is false and nothing changes.
func (c *Cart) SetQuantity(productID uint, quantity int) (removed bool, item *LineItem, ok bool) {
	i := c.index(productID)
	if i < 0 {
		return false, nil, false
	}
	if quantity == 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return true, nil, true
	}
	c.Items[i].Quantity = quantity
	return false, &c.Items[i], true
}

// Remove deletes a line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID uint) {
	c.SetQuantity(productID, 0)
}

// Clear empties the cart unconditionally. It is idempotent.
func (c *Cart) Clear() {
	c.Items = nil
}

// Summary computes the snapshot of the current cart state: per-line
// subtotals, the cart total, and the distinct-line count. It never mutates
// the cart and is stable under repeated calls.
func (c *Cart) Summary() CartSummary {
	summary := CartSummary{
		Lines:     make([]LineView, 0, len(c.Items)),
		ItemCount: len(c.Items),
	}
	for _, item := range c.Items {
		subtotal := item.Subtotal()
		summary.Lines = append(summary.Lines, LineView{LineItem: item, Subtotal: subtotal})
		summary.Total = summary.Total.Add(subtotal)
	}
	return summary
}
