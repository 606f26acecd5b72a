package app

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/toko-register/internal/cart"
	"github.com/noah-isme/toko-register/internal/config"
	"github.com/noah-isme/toko-register/internal/events"
	"github.com/noah-isme/toko-register/internal/inventory"
	"github.com/noah-isme/toko-register/internal/report"
)

// Dependencies enumerates the core services shared across modules.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Validator *validator.Validate
	Sink      *report.FileSink
	Events    *events.Bus
	Store     *inventory.Store
	Cart      *cart.Cart
}

// Build wires the register's dependency graph: the report sink, the event
// bus, the store and the process-wide cart.
func Build(cfg *config.Config, logger zerolog.Logger) (*Dependencies, error) {
	sink, err := report.NewFileSink(cfg.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("build report sink: %w", err)
	}

	bus := &events.Bus{
		Notifiers: []events.Notifier{events.LogNotifier{Logger: logger}},
	}

	store := inventory.New(inventory.Config{
		Sink:             sink,
		Events:           bus,
		Logger:           logger,
		ReorderThreshold: cfg.ReorderThreshold,
	})

	return &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Validator: validator.New(),
		Sink:      sink,
		Events:    bus,
		Store:     store,
		Cart:      cart.Shared(),
	}, nil
}
