package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/lushka-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/lushka-backend/api/controllers/cart"
	quizcontrollers "github.com/angelmondragon/lushka-backend/api/controllers/quiz"
	"github.com/angelmondragon/lushka-backend/api/middleware"
	"github.com/angelmondragon/lushka-backend/internal/cart"
	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/internal/checkout"
	"github.com/angelmondragon/lushka-backend/internal/recommendation"
	"github.com/angelmondragon/lushka-backend/pkg/config"
	"github.com/angelmondragon/lushka-backend/pkg/logger"
	"github.com/angelmondragon/lushka-backend/pkg/metrics"
)

// Services groups the domain services mounted under /api/v1.
type Services struct {
	Catalog         *catalog.Catalog
	Cart            cart.Service
	Recommendations recommendation.Service
	Checkout        checkout.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	storefrontMetrics *metrics.Storefront,
	limiter middleware.RateLimiter,
	readiness map[string]controllers.Pinger,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, storefrontMetrics),
		middleware.CORS(cfg.CORS, cfg.Session.Header),
	)

	sessionPolicy := middleware.NewRateLimitPolicy("sessions", cfg.RateLimit.Window, cfg.RateLimit.IPLimit)
	answerPolicy := middleware.NewRateLimitPolicy("quiz_answers", cfg.RateLimit.Window, cfg.RateLimit.IPLimit)

	now := time.Now

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionPolicy, limiter, logg)).Post("/sessions", controllers.SessionCreate(cfg.Session, logg, now))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", controllers.CatalogCategories(svc.Catalog))
			r.Get("/products", controllers.CatalogProducts(svc.Catalog, logg, now))
			r.Get("/products/{id}", controllers.CatalogProduct(svc.Catalog, logg, now))
			r.Get("/bundles", controllers.CatalogBundles(svc.Catalog, logg, now))
			r.Get("/bundles/{id}", controllers.CatalogBundle(svc.Catalog, logg, now))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(svc.Cart, logg))
				r.Delete("/", cartcontrollers.CartClear(svc.Cart, logg))
				r.Post("/items", cartcontrollers.CartAddItem(svc.Cart, logg))
				r.Patch("/items/{lineId}", cartcontrollers.CartUpdateItem(svc.Cart, logg))
				r.Delete("/items/{lineId}", cartcontrollers.CartRemoveItem(svc.Cart, logg))
				r.Get("/lookup/{itemId}", cartcontrollers.CartLookup(svc.Cart, logg))
			})

			r.Route("/checkout/whatsapp", func(r chi.Router) {
				r.Post("/", controllers.CheckoutWhatsApp(svc.Checkout, logg))
				r.Post("/custom", controllers.CheckoutCustomMessage(svc.Checkout, logg))
			})

			r.Route("/quiz", func(r chi.Router) {
				r.Get("/", quizcontrollers.QuizFetch(svc.Recommendations, logg))
				r.With(middleware.RateLimit(answerPolicy, limiter, logg)).Post("/answers", quizcontrollers.QuizAnswer(svc.Recommendations, logg))
				r.Post("/back", quizcontrollers.QuizBack(svc.Recommendations, logg))
				r.Post("/reset", quizcontrollers.QuizReset(svc.Recommendations, logg))
				r.Post("/recommendation/cart", quizcontrollers.QuizAddToCart(svc.Recommendations, logg))
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", controllers.RecommendationList(svc.Recommendations, logg))
				r.Get("/{id}", controllers.RecommendationGet(svc.Recommendations, logg))
			})
		})
	})

	return r
}
