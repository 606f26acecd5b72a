// Command seeder stocks a register with the demo catalog and replays a
// couple of purchase rounds, leaving the report files behind for inspection.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-register/internal/app"
	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/config"
	"github.com/noah-isme/toko-register/internal/obs"
	"github.com/noah-isme/toko-register/internal/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := obs.NewLogger("console", cfg.LogLevel).With().Str("tool", "seeder").Logger()
	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	deps, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build dependencies")
	}
	ctx := context.Background()

	discount := pricing.ModeDiscount
	phone, err := catalog.Create(catalog.KindPhone, catalog.Overrides{Pricing: &discount})
	if err != nil {
		logger.Fatal().Err(err).Msg("build phone")
	}

	seasonal := pricing.ModeSeasonal
	customName := "Custom Laptop"
	customPrice := decimal.RequireFromString("1500")
	laptop, err := catalog.Create(catalog.KindLaptop, catalog.Overrides{
		Name:      &customName,
		UnitPrice: &customPrice,
		Pricing:   &seasonal,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build laptop")
	}

	if err := deps.Store.TakeDelivery(ctx, []*catalog.Product{phone, laptop}); err != nil {
		logger.Fatal().Err(err).Msg("take delivery")
	}

	runPurchase(ctx, deps, logger, 2, 1)
	runPurchase(ctx, deps, logger, 5, 6)

	for _, p := range deps.Store.RankByUnitValue() {
		logger.Info().Int64("id", p.ID).Str("name", p.Name).Int("quantity", p.Quantity).Msg("unit value ranking")
	}
	logger.Info().Str("report_dir", cfg.ReportDir).Msg("seeding completed")
}

func runPurchase(ctx context.Context, deps *app.Dependencies, logger zerolog.Logger, phoneQty, laptopQty int) {
	phone, err := deps.Store.Ref(1)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve phone")
	}
	laptop, err := deps.Store.Ref(2)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve laptop")
	}

	deps.Cart.Add(phone, phoneQty)
	deps.Cart.Add(laptop, laptopQty)
	deps.Cart.Display(os.Stdout)

	receipt, err := deps.Store.ProcessPurchase(ctx, deps.Cart)
	if err != nil {
		logger.Error().Err(err).Msg("purchase reports incomplete")
	}
	logger.Info().
		Str("invoice_id", receipt.InvoiceID).
		Str("total_gross", receipt.TotalGross.String()).
		Int("lines", len(receipt.Lines)).
		Msg("purchase processed")

	if _, err := deps.Store.GenerateStockReport(ctx); err != nil {
		logger.Error().Err(err).Msg("stock report")
	}
	deps.Cart.Clear()
}
