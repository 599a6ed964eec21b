package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taglinkbr/taglink-backend/api/controllers"
	"github.com/taglinkbr/taglink-backend/api/middleware"
	"github.com/taglinkbr/taglink-backend/internal/activation"
	"github.com/taglinkbr/taglink-backend/internal/cart"
	"github.com/taglinkbr/taglink-backend/internal/coupons"
	"github.com/taglinkbr/taglink-backend/internal/fulfillment"
	"github.com/taglinkbr/taglink-backend/internal/pettags"
	"github.com/taglinkbr/taglink-backend/pkg/config"
	"github.com/taglinkbr/taglink-backend/pkg/db"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
	"github.com/taglinkbr/taglink-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promGatherer prometheus.Gatherer,
	couponService coupons.Service,
	activationService activation.Service,
	fulfillmentService fulfillment.Service,
	cartService cart.Service,
	petTagService pettags.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if promGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Use(middleware.PublicRateLimit("public", cfg.RateLimit, redisClient, logg))
		r.Get("/pet-tags/{qrCode}", controllers.PublicPetTag(petTagService, logg))
		r.Post("/activation/validate", controllers.ValidateActivation(activationService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWT, logg))
		r.Use(middleware.Idempotency(cfg.RateLimit, redisClient, logg))

		r.Post("/coupons/validate", controllers.ValidateCoupon(couponService, logg))
		r.Post("/activation/claim", controllers.ClaimProduct(activationService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(fulfillmentService, logg))
			r.Get("/{orderId}/tracking", controllers.OrderTracking(fulfillmentService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(cartService, logg))
			r.Delete("/", controllers.ClearCart(cartService, logg))
			r.Post("/items", controllers.AddCartItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(cartService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
		r.Use(middleware.Idempotency(cfg.RateLimit, redisClient, logg))

		r.Post("/orders/{orderId}/status", controllers.AdminAdvanceOrderStatus(fulfillmentService, logg))
		r.Post("/coupons", controllers.AdminCreateCoupon(couponService, logg))
		r.Get("/coupons", controllers.AdminListCoupons(couponService, logg))
	})

	return r
}
