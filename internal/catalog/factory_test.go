package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/pricing"
)

func TestCreatePresets(t *testing.T) {
	phone, err := catalog.Create(catalog.KindPhone, catalog.Overrides{})
	require.NoError(t, err)
	require.Equal(t, int64(1), phone.ID)
	require.Equal(t, "Iphone XYZ", phone.Name)
	require.True(t, phone.UnitPrice.Equal(decimal.RequireFromString("799.99")))
	require.Equal(t, 50, phone.Quantity)

	laptop, err := catalog.Create(catalog.KindLaptop, catalog.Overrides{})
	require.NoError(t, err)
	require.Equal(t, int64(2), laptop.ID)
	require.Equal(t, 30, laptop.Quantity)
}

func TestCreateAppliesOverridesInOrder(t *testing.T) {
	name := "Custom Laptop"
	price := decimal.RequireFromString("1500")
	mode := pricing.ModeSeasonal

	p, err := catalog.Create(catalog.KindLaptop, catalog.Overrides{
		Name:      &name,
		UnitPrice: &price,
		Pricing:   &mode,
	})
	require.NoError(t, err)
	require.Equal(t, "Custom Laptop", p.Name)
	// Pricing runs after the price override, so the surcharge compounds on 1500.
	require.True(t, p.UnitPrice.Equal(decimal.RequireFromString("1650")))
	require.Equal(t, 30, p.Quantity)
}

func TestCreateDiscountPreset(t *testing.T) {
	mode := pricing.ModeDiscount
	p, err := catalog.Create(catalog.KindPhone, catalog.Overrides{Pricing: &mode})
	require.NoError(t, err)
	require.True(t, p.UnitPrice.Equal(decimal.RequireFromString("639.992")))
}

func TestCreateCustomRequiresAllFields(t *testing.T) {
	_, err := catalog.Create(catalog.KindCustom, catalog.Overrides{})
	require.ErrorIs(t, err, catalog.ErrIncompleteCustom)

	id := int64(9)
	name := "Charger"
	price := decimal.RequireFromString("19.99")
	qty := 12
	p, err := catalog.Create(catalog.KindCustom, catalog.Overrides{ID: &id, Name: &name, UnitPrice: &price, Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, int64(9), p.ID)
	require.Equal(t, 12, p.Quantity)
}

func TestCreateRejectsBadInput(t *testing.T) {
	_, err := catalog.Create(catalog.Kind("fridge"), catalog.Overrides{})
	require.ErrorIs(t, err, catalog.ErrUnknownKind)

	neg := -1
	_, err = catalog.Create(catalog.KindPhone, catalog.Overrides{Quantity: &neg})
	require.Error(t, err)

	_, err = catalog.ParseKind("toaster")
	require.ErrorIs(t, err, catalog.ErrUnknownKind)

	k, err := catalog.ParseKind(" TV ")
	require.NoError(t, err)
	require.Equal(t, catalog.KindTV, k)
}
