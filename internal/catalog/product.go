// Package catalog defines the product record and the preset factory used to
// build catalog entries before they are delivered to a store.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/pricing"
)

// Product is a catalog entry. Once delivered it is owned by the store's
// inventory; carts hold references to the same record, so identity is shared
// via ID rather than copied.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// ApplyPricing runs the mode against the current unit price and overwrites
// it. There is no strategy history; re-applying compounds on the stored
// price.
func (p *Product) ApplyPricing(mode pricing.Mode) {
	p.UnitPrice = mode.Apply(p.UnitPrice)
}

func (p *Product) String() string {
	return fmt.Sprintf("Product: %s (ID: %d) - Price: %s, Quantity: %d", p.Name, p.ID, p.UnitPrice, p.Quantity)
}
