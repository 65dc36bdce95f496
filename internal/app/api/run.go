package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	northwindserver "github.com/Apurer/northwind-orders/go"
	ordersmemory "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/northwind-orders/internal/domains/orders/adapters/persistence/schema"
	ordersapp "github.com/Apurer/northwind-orders/internal/domains/orders/application"
	ordersports "github.com/Apurer/northwind-orders/internal/domains/orders/ports"
	"github.com/Apurer/northwind-orders/internal/platform/httpmw"
	platformmetrics "github.com/Apurer/northwind-orders/internal/platform/metrics"
	"github.com/Apurer/northwind-orders/internal/platform/migrations"
	platformobservability "github.com/Apurer/northwind-orders/internal/platform/observability"
	platformpostgres "github.com/Apurer/northwind-orders/internal/platform/postgres"
)

// Run boots the orders HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *Config) error {
	registry := platformmetrics.NewRegistry()
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Registerer:   registry,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalog, err := migrations.LoadCatalogFile(cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("load reference catalog: %w", err)
	}
	repo, ready, cleanupRepo, err := buildOrderRepository(ctx, cfg, catalog, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	service := ordersobs.New(
		ordersapp.NewService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg.ServiceName, service, ready, registry, logger),
		ReadHeaderTimeout: cfg.Graceful.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("orders API listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down orders API", slog.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newRouter installs middleware before routes so every route is instrumented.
func newRouter(serviceName string, service ordersports.Service, ready func(context.Context) error, registry *prometheus.Registry, logger *slog.Logger) *gin.Engine {
	httpMetrics := platformmetrics.NewHTTPMetrics(registry)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		httpmw.RequestID(),
		otelgin.Middleware(serviceName),
		httpMetrics.Middleware(),
		httpmw.AccessLog(logger),
	)
	return northwindserver.NewRouterWithGinEngine(engine, northwindserver.ApiHandleFunctions{
		OrdersAPI: northwindserver.NewOrdersAPI(service),
		HealthAPI: northwindserver.NewHealthAPI(ready),
		Metrics:   platformmetrics.Handler(registry),
	})
}

// buildOrderRepository prefers Postgres and falls back to the in-memory repository
// when no database is configured or reachable.
func buildOrderRepository(ctx context.Context, cfg *Config, catalog *schema.Catalog, logger *slog.Logger) (ordersports.Repository, func(context.Context) error, func(), error) {
	db, cleanup := platformpostgres.Open(ctx, cfg.DatabaseURL, logger)
	if db == nil {
		logger.Info("order repository configured in memory", slog.Int("catalog.products", len(catalog.Products)))
		return ordersmemory.NewRepository(catalog), nil, cleanup, nil
	}
	if cfg.MigrateOnStart {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("migrate schema: %w", err)
		}
		if err := migrations.Seed(ctx, db, catalog); err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("seed reference data: %w", err)
		}
		logger.Info("schema migrated and reference data seeded")
	}
	ready := func(ctx context.Context) error { return platformpostgres.Ping(ctx, db) }
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), ready, cleanup, nil
}
