package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/greatkart/api/controllers"
	cartcontrollers "github.com/angelmondragon/greatkart/api/controllers/cart"
	"github.com/angelmondragon/greatkart/api/middleware"
	"github.com/angelmondragon/greatkart/api/responses"
	"github.com/angelmondragon/greatkart/internal/cart"
	"github.com/angelmondragon/greatkart/pkg/config"
	"github.com/angelmondragon/greatkart/pkg/db"
	"github.com/angelmondragon/greatkart/pkg/logger"
	"github.com/angelmondragon/greatkart/pkg/metrics"
	"github.com/angelmondragon/greatkart/pkg/redis"
	"github.com/angelmondragon/greatkart/pkg/session"
)

type redisClient interface {
	redis.Pinger
	redis.IdempotencyStore
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisC redisClient,
	sessionManager *session.Manager,
	cartService cart.Service,
	templates responses.Renderer,
	cartMetrics *metrics.CartMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(cartMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    dbP,
			"redis": redisC,
		}))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	sessions := middleware.Session(sessionManager, cfg.Session, logg)

	// Cart pages accept GET for plain links and POST for forms.
	r.Route("/cart", func(r chi.Router) {
		r.Use(sessions)
		r.Get("/", cartcontrollers.CartPage(cartService, templates, logg))
		r.Get("/add_cart/{productId}/", cartcontrollers.AddCart(cartService, logg))
		r.Post("/add_cart/{productId}/", cartcontrollers.AddCart(cartService, logg))
		r.Get("/remove_cart/{productId}/", cartcontrollers.RemoveCart(cartService, logg))
		r.Post("/remove_cart/{productId}/", cartcontrollers.RemoveCart(cartService, logg))
		r.Get("/remove_cart_item/{productId}/", cartcontrollers.RemoveCartItem(cartService, logg))
		r.Post("/remove_cart_item/{productId}/", cartcontrollers.RemoveCartItem(cartService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.HTTP.CORSOrigins))
		r.Use(sessions)

		idempotent := r.With(middleware.Idempotency(redisC, logg))
		r.Get("/", cartcontrollers.CartFetch(cartService, logg))
		idempotent.Post("/items/{productId}", cartcontrollers.CartItemAdd(cartService, logg))
		idempotent.Post("/items/{productId}/decrement", cartcontrollers.CartItemDecrement(cartService, logg))
		idempotent.Delete("/items/{productId}", cartcontrollers.CartItemDelete(cartService, logg))
	})

	return r
}
