// Package pricing holds the closed set of pricing modes a product can be
// customised with, plus the flat tax math used by cart and invoice totals.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode identifies a pricing rule. The set is closed: adding a rule means
// adding a variant here, not implementing an interface elsewhere.
type Mode int

const (
	// ModeRegular leaves the base price untouched.
	ModeRegular Mode = iota
	// ModeDiscount applies a flat 20% discount.
	ModeDiscount
	// ModeSeasonal applies a flat 10% surcharge.
	ModeSeasonal
)

var (
	one                = decimal.New(1, 0)
	discountMultiplier = decimal.New(8, -1)  // 0.8
	seasonalMultiplier = decimal.New(11, -1) // 1.1

	// TaxRate is the flat rate applied to net totals.
	TaxRate = decimal.New(18, -2) // 0.18
)

// String returns the canonical name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeRegular:
		return "regular"
	case ModeDiscount:
		return "discount"
	case ModeSeasonal:
		return "seasonal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether the mode is one of the known variants.
func (m Mode) Valid() bool {
	switch m {
	case ModeRegular, ModeDiscount, ModeSeasonal:
		return true
	default:
		return false
	}
}

// Apply maps a base price to the adjusted price for the mode. It is pure and
// deterministic; applying a mode to a product is a one-time transformation.
func (m Mode) Apply(basePrice decimal.Decimal) decimal.Decimal {
	switch m {
	case ModeDiscount:
		return basePrice.Mul(discountMultiplier)
	case ModeSeasonal:
		return basePrice.Mul(seasonalMultiplier)
	default:
		return basePrice
	}
}

// ParseMode resolves a mode from its canonical name.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "regular":
		return ModeRegular, nil
	case "discount":
		return ModeDiscount, nil
	case "seasonal":
		return ModeSeasonal, nil
	default:
		return ModeRegular, fmt.Errorf("unknown pricing mode %q", value)
	}
}

// Gross returns the net amount with the flat tax applied.
func Gross(net decimal.Decimal) decimal.Decimal {
	return net.Mul(one.Add(TaxRate))
}
