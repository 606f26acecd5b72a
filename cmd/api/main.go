package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/toko-register/internal/app"
	"github.com/noah-isme/toko-register/internal/cart"
	"github.com/noah-isme/toko-register/internal/catalog"
	"github.com/noah-isme/toko-register/internal/config"
	"github.com/noah-isme/toko-register/internal/health"
	"github.com/noah-isme/toko-register/internal/inventory"
	"github.com/noah-isme/toko-register/internal/obs"
	"github.com/noah-isme/toko-register/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)

	deps, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build dependencies")
	}

	catalogHandler := &catalog.Handler{Validate: deps.Validator}
	cartHandler := &cart.Handler{Cart: deps.Cart, Products: deps.Store, Validate: deps.Validator}
	storeHandler := &inventory.Handler{Store: deps.Store, Cart: deps.Cart, Validate: deps.Validator}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if cfg.MetricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		Checker:     readinessChecker{sink: deps.Sink},
		SinkTimeout: 300 * time.Millisecond,
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/products", storeHandler.Products)
		v.Post("/products", catalogHandler.Create)

		v.Post("/deliveries", storeHandler.Deliver)
		v.Post("/purchase", storeHandler.Purchase)

		v.Route("/cart", func(c chi.Router) {
			c.Get("/", cartHandler.Get)
			c.Delete("/", cartHandler.Clear)
			c.Post("/items", cartHandler.AddItem)
			c.Patch("/items/{productID}", cartHandler.UpdateItem)
			c.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		v.Route("/reports", func(rep chi.Router) {
			rep.Get("/low-stock", storeHandler.LowStock)
			rep.Get("/stock", storeHandler.Stock)
			rep.Get("/sales-history", storeHandler.SalesHistory)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Str("report_dir", cfg.ReportDir).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	sink *report.FileSink
}

func (c readinessChecker) PingSink(ctx context.Context, timeout time.Duration) error {
	if c.sink == nil {
		return errors.New("sink not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.sink.Ping(ctx)
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
