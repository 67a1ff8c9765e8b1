package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karikadai/karikadai-backend/api/controllers"
	"github.com/karikadai/karikadai-backend/api/middleware"
	cartsvc "github.com/karikadai/karikadai-backend/internal/cart"
	checkoutsvc "github.com/karikadai/karikadai-backend/internal/checkout"
	ordersvc "github.com/karikadai/karikadai-backend/internal/orders"
	ratesvc "github.com/karikadai/karikadai-backend/internal/rates"
	settingsvc "github.com/karikadai/karikadai-backend/internal/settings"
	stocksvc "github.com/karikadai/karikadai-backend/internal/stocks"
	"github.com/karikadai/karikadai-backend/pkg/config"
	"github.com/karikadai/karikadai-backend/pkg/logger"
	"github.com/karikadai/karikadai-backend/pkg/metrics"
	pkgredis "github.com/karikadai/karikadai-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pkgredis.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Rates    ratesvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Stocks   stocksvc.Service
	Settings settingsvc.Service

	EventStream controllers.OrderEventStream
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var redisPinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idemStore = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, redisPinger, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", controllers.Rates(deps.Rates, logg))
		r.Get("/settings", controllers.ShopSettings(deps.Settings, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, deps.Rates, logg))
			r.Delete("/items/{key}", controllers.CartRemove(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.With(middleware.Idempotency(idemStore, logg)).
			Post("/checkout", controllers.Checkout(deps.Checkout, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(deps.Orders, logg))
				r.Get("/stream", controllers.AdminOrdersStream(deps.EventStream, logg))
				r.Get("/{id}", controllers.AdminOrderGet(deps.Orders, logg))
				r.Patch("/{id}/status", controllers.AdminOrderStatusUpdate(deps.Orders, logg))
			})

			r.Get("/stats", controllers.AdminStats(deps.Orders, logg))

			r.Route("/rates", func(r chi.Router) {
				r.Get("/", controllers.Rates(deps.Rates, logg))
				r.Put("/{itemType}", controllers.AdminRateUpdate(deps.Rates, logg))
				r.Post("/{itemType}/toggle", controllers.AdminRateToggle(deps.Rates, logg))
			})

			r.Route("/stocks", func(r chi.Router) {
				r.Get("/", controllers.AdminStocksList(deps.Stocks, logg))
				r.Patch("/{itemType}", controllers.AdminStockUpdate(deps.Stocks, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.ShopSettings(deps.Settings, logg))
				r.Put("/", controllers.AdminSettingsUpdate(deps.Settings, logg))
			})
		})
	})

	return r
}
