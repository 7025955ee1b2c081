package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordershttp "ordersvc/internal/orders/adapters/http"
	ordersmemory "ordersvc/internal/orders/adapters/memory"
	ordersobs "ordersvc/internal/orders/adapters/observability"
	orderspostgres "ordersvc/internal/orders/adapters/persistence/postgres"
	ordersapp "ordersvc/internal/orders/application"
	ordersports "ordersvc/internal/orders/ports"
	"ordersvc/internal/platform/migrations"
	platformobservability "ordersvc/internal/platform/observability"
	platformpostgres "ordersvc/internal/platform/postgres"
)

// Run boots the orders HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "orders-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repo, cleanupRepo := buildRepository(ctx, cfg, logger)
	defer cleanupRepo()

	service := ordersobs.New(
		ordersapp.NewService(repo),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := ordershttp.NewRouter(ordershttp.NewOrderAPI(service), otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepository prefers PostgreSQL and falls back to the in-memory adapter
// when no DSN is configured or the connection fails.
func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate schema, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}
