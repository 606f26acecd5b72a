// Package cart implements the shopping cart: an ordered collection of line
// items referencing live catalog products.
package cart

import (
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/pricing"
)

// LineItem pairs a product reference with a quantity. The product is shared
// with the store's inventory, not copied: cart and inventory match on the
// product id and see the same record.
type LineItem struct {
	Product  *catalog.Product
	Quantity int
}

// NetPrice is unit price times quantity.
func (li *LineItem) NetPrice() decimal.Decimal {
	return li.Product.UnitPrice.Mul(decimal.New(int64(li.Quantity), 0))
}

// GrossPrice is the net price with the flat tax applied.
func (li *LineItem) GrossPrice() decimal.Decimal {
	return pricing.Gross(li.NetPrice())
}

// Cart accumulates line items in insertion order, one per distinct product
// id. Mutation is not synchronized; callers sharing a cart across goroutines
// serialize access themselves.
type Cart struct {
	items []*LineItem
}

// New constructs an empty cart. Build one at startup and inject it into
// every consumer; Shared exists for callers that want the process-wide cart.
func New() *Cart {
	return &Cart{}
}

var (
	sharedOnce sync.Once
	shared     *Cart
)

// Shared returns the lazily created process-wide cart. Construction is
// guarded so exactly one instance is ever created; everything after that is
// the caller's responsibility.
func Shared() *Cart {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// Add inserts a line item for the product, or increments the existing line's
// quantity when the product id is already present. The quantity sign is not
// validated here; the HTTP surface rejects non-positive quantities before
// they reach the cart.
func (c *Cart) Add(p *catalog.Product, quantity int) {
	for _, item := range c.items {
		if item.Product.ID == p.ID {
			item.Quantity += quantity
			return
		}
	}
	c.items = append(c.items, &LineItem{Product: p, Quantity: quantity})
}

// Remove deletes every line item matching the product id. Removing an absent
// product is a no-op.
func (c *Cart) Remove(p *catalog.Product) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != p.ID {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = nil
	}
	c.items = kept
}

// UpdateQuantity overwrites the quantity on the matching line item. A value
// of zero or below removes the line; an absent product is a no-op.
func (c *Cart) UpdateQuantity(p *catalog.Product, newQuantity int) {
	for _, item := range c.items {
		if item.Product.ID == p.ID {
			if newQuantity <= 0 {
				c.Remove(p)
			} else {
				item.Quantity = newQuantity
			}
			return
		}
	}
}

// Items returns the live line items in insertion order. Purchase processing
// mutates quantities through this slice when stock runs short.
func (c *Cart) Items() []*LineItem {
	return c.items
}

// Len reports the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// TotalNet sums per-line net prices.
func (c *Cart) TotalNet() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.NetPrice())
	}
	return total
}

// TotalGross sums per-line gross prices.
func (c *Cart) TotalGross() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.GrossPrice())
	}
	return total
}

// Clear empties the cart. The cart value itself stays usable.
func (c *Cart) Clear() {
	c.items = nil
}

// Display writes a human-readable listing of the cart to w. It reads live
// product records, so names and prices always reflect the current catalog.
func (c *Cart) Display(w io.Writer) {
	for _, item := range c.items {
		fmt.Fprintf(w, "Product: %s, Quantity: %d, Net Price: %s, Gross Price: %s\n",
			item.Product.Name, item.Quantity, item.NetPrice(), item.GrossPrice())
	}
}
