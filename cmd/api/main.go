package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/printdeskhq/printdesk-backend/api/routes"
	"github.com/printdeskhq/printdesk-backend/internal/assignments"
	"github.com/printdeskhq/printdesk-backend/internal/catalog"
	"github.com/printdeskhq/printdesk-backend/internal/performance"
	"github.com/printdeskhq/printdesk-backend/internal/pricing"
	"github.com/printdeskhq/printdesk-backend/internal/recommendations"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	"github.com/printdeskhq/printdesk-backend/internal/suppliers"
	"github.com/printdeskhq/printdesk-backend/pkg/config"
	"github.com/printdeskhq/printdesk-backend/pkg/db"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
	"github.com/printdeskhq/printdesk-backend/pkg/metrics"
	"github.com/printdeskhq/printdesk-backend/pkg/migrate"
	"github.com/printdeskhq/printdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engine := metrics.NewEngineMetrics(registry)

	gormDB := dbClient.DB()

	settingsService, err := settings.NewService(settings.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	classifier, err := catalog.NewClassifier(catalog.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog classifier", err)
		os.Exit(1)
	}

	aggregator, err := performance.NewAggregator(
		performance.NewRepository(gormDB, cfg.Scoring.DefaultDeliveryDays),
		redisClient,
		cfg.Scoring.MetricsCacheTTL,
		cfg.Scoring.DefaultDeliveryDays,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create performance aggregator", err)
		os.Exit(1)
	}

	recommendationsService, err := recommendations.NewService(
		classifier,
		pricing.NewRepository(gormDB),
		aggregator,
		settingsService,
		logg,
		engine,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendations service", err)
		os.Exit(1)
	}

	assignmentsService, err := assignments.NewService(assignments.NewRepository(gormDB), dbClient, logg, engine)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignments service", err)
		os.Exit(1)
	}

	suppliersService, err := suppliers.NewService(suppliers.NewRepository(gormDB), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create suppliers service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Cache:           redisClient,
			Registry:        registry,
			Recommendations: recommendationsService,
			Assignments:     assignmentsService,
			Suppliers:       suppliersService,
			Settings:        settingsService,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
