package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/pricing"
)

// Kind selects a factory preset.
type Kind string

// Factory presets.
const (
	KindPhone      Kind = "phone"
	KindLaptop     Kind = "laptop"
	KindTV         Kind = "tv"
	KindTablet     Kind = "tablet"
	KindHeadphones Kind = "headphones"
	KindCustom     Kind = "custom"
)

// ErrUnknownKind is returned when the factory does not recognise the kind.
var ErrUnknownKind = errors.New("unknown product kind")

// ErrIncompleteCustom is returned when a custom product misses a required field.
var ErrIncompleteCustom = errors.New("custom product requires id, name, price and quantity")

// Overrides carries optional customisations applied on top of a preset in a
// fixed order: id, name, price, quantity, pricing. The pricing mode runs
// last, so it transforms the overridden price when one is given.
type Overrides struct {
	ID        *int64
	Name      *string
	UnitPrice *decimal.Decimal
	Quantity  *int
	Pricing   *pricing.Mode
}

// ParseKind resolves a kind from its wire name.
func ParseKind(value string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch k {
	case KindPhone, KindLaptop, KindTV, KindTablet, KindHeadphones, KindCustom:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
}

// Create builds a product from a preset and applies the overrides. It fails
// fast on unknown kinds and negative quantities without touching any state.
func Create(kind Kind, o Overrides) (*Product, error) {
	var p *Product
	switch kind {
	case KindPhone:
		p = preset(1, "Iphone XYZ", "799.99", 50)
	case KindLaptop:
		p = preset(2, "MacBook XYZ", "1299.99", 30)
	case KindTV:
		p = preset(3, "AppleTv XYZ", "599.99", 40)
	case KindTablet:
		p = preset(4, "Ipad XYZ", "399.99", 25)
	case KindHeadphones:
		p = preset(5, "Apple Ear XYZ", "349.99", 60)
	case KindCustom:
		if o.ID == nil || o.Name == nil || o.UnitPrice == nil || o.Quantity == nil {
			return nil, ErrIncompleteCustom
		}
		p = &Product{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if o.ID != nil {
		p.ID = *o.ID
	}
	if o.Name != nil {
		p.Name = *o.Name
	}
	if o.UnitPrice != nil {
		p.UnitPrice = *o.UnitPrice
	}
	if o.Quantity != nil {
		if *o.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative: %d", *o.Quantity)
		}
		p.Quantity = *o.Quantity
	}
	if o.Pricing != nil {
		if !o.Pricing.Valid() {
			return nil, fmt.Errorf("invalid pricing mode %d", int(*o.Pricing))
		}
		p.ApplyPricing(*o.Pricing)
	}
	return p, nil
}

func preset(id int64, name, price string, quantity int) *Product {
	return &Product{
		ID:        id,
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  quantity,
	}
}
