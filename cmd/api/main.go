package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/karikadai/karikadai-backend/api/routes"
	"github.com/karikadai/karikadai-backend/internal/cart"
	"github.com/karikadai/karikadai-backend/internal/checkout"
	"github.com/karikadai/karikadai-backend/internal/orders"
	"github.com/karikadai/karikadai-backend/internal/rates"
	"github.com/karikadai/karikadai-backend/internal/settings"
	"github.com/karikadai/karikadai-backend/internal/stocks"
	"github.com/karikadai/karikadai-backend/pkg/config"
	"github.com/karikadai/karikadai-backend/pkg/db"
	"github.com/karikadai/karikadai-backend/pkg/logger"
	"github.com/karikadai/karikadai-backend/pkg/metrics"
	"github.com/karikadai/karikadai-backend/pkg/migrate"
	"github.com/karikadai/karikadai-backend/pkg/redis"
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

	ratesService, err := rates.NewService(rates.NewRepository(dbClient.DB()), cfg.Shop)
	if err != nil {
		logg.Error(context.Background(), "failed to create rates service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, logg, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), cfg.Shop)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	eventPublisher, err := orders.NewEventPublisher(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create event publisher", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, eventPublisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, ordersRepo, eventPublisher, settingsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	stocksService, err := stocks.NewService(stocks.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create stocks service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		HTTPMetrics: metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Rates:       ratesService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Orders:      ordersService,
		Stocks:      stocksService,
		Settings:    settingsService,
		EventStream: redisClient,
	})

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
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
