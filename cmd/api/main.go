package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taglinkbr/taglink-backend/api/routes"
	"github.com/taglinkbr/taglink-backend/internal/activation"
	"github.com/taglinkbr/taglink-backend/internal/cart"
	"github.com/taglinkbr/taglink-backend/internal/coupons"
	"github.com/taglinkbr/taglink-backend/internal/fulfillment"
	"github.com/taglinkbr/taglink-backend/internal/pettags"
	"github.com/taglinkbr/taglink-backend/pkg/config"
	"github.com/taglinkbr/taglink-backend/pkg/db"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
	"github.com/taglinkbr/taglink-backend/pkg/metrics"
	"github.com/taglinkbr/taglink-backend/pkg/migrate"
	"github.com/taglinkbr/taglink-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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
	opsMetrics := metrics.NewOpsMetrics(registry)

	couponService, err := coupons.NewService(coupons.NewRepository(dbClient.DB()), opsMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}

	activationService, err := activation.NewService(activation.NewRepository(dbClient.DB()), opsMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create activation service", err)
		os.Exit(1)
	}

	fulfillmentService, err := fulfillment.NewService(fulfillment.NewRepository(dbClient.DB()), cfg.Fulfillment)
	if err != nil {
		logg.Error(context.Background(), "failed to create fulfillment service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRedisStore(redisClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	petTagService, err := pettags.NewService(pettags.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create pet tag service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			couponService,
			activationService,
			fulfillmentService,
			cartService,
			petTagService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
