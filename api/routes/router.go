package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/permataindah/storefront-backend/api/controllers"
	"github.com/permataindah/storefront-backend/api/middleware"
	"github.com/permataindah/storefront-backend/internal/auth"
	"github.com/permataindah/storefront-backend/internal/orders"
	"github.com/permataindah/storefront-backend/internal/payments"
	"github.com/permataindah/storefront-backend/internal/products"
	"github.com/permataindah/storefront-backend/internal/storehours"
	"github.com/permataindah/storefront-backend/internal/users"
	"github.com/permataindah/storefront-backend/pkg/config"
	"github.com/permataindah/storefront-backend/pkg/logger"
	"github.com/permataindah/storefront-backend/pkg/metrics"
	"github.com/permataindah/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	userLoader middleware.UserLoader,
	authService auth.Service,
	userService users.Service,
	productService products.Service,
	orderService orders.Service,
	storeHoursService storehours.Service,
	paymentService payments.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(registry)))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	rateLimited := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"database": dbPinger,
			"redis":    pingerOrNil(redisClient),
		}))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimited(loginPolicy)).Post("/login", controllers.AuthLogin(authService, cfg.JWT, logg))
			r.With(rateLimited(registerPolicy)).Post("/register", controllers.AuthRegister(authService, cfg.JWT, logg))
			r.Post("/logout", controllers.AuthLogout(cfg.JWT, logg))
			r.With(rateLimited(loginPolicy)).Post("/admin/login", controllers.AdminAuthLogin(authService, cfg.JWT, logg))
		})

		// Public storefront surface. The featured and category routes come
		// before the id route so chi does not treat them as product ids.
		r.Get("/products", controllers.ListProducts(productService, logg))
		r.Get("/products/featured", controllers.ListFeaturedProducts(productService, logg))
		r.Get("/products/category/{category}", controllers.ListProductsByCategory(productService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(productService, logg))
		r.Get("/store-hours", controllers.GetStoreHours(storeHoursService, logg))

		// Midtrans calls this without a session; the payload signature is the
		// authentication.
		r.Post("/payments/notification", controllers.PaymentNotification(paymentService, logg))

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, userLoader, logg))

			r.Get("/auth/me", controllers.AuthMe(authService, logg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", controllers.GetProfile(userService, logg))
				r.Put("/profile", controllers.UpdateProfile(userService, logg))
				r.Put("/password", controllers.UpdatePassword(userService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.PlaceOrder(orderService, logg))
				r.Get("/", controllers.ListMyOrders(orderService, logg))
				r.Get("/user/{userId}", controllers.ListUserOrders(orderService, logg))
				r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/create-token", controllers.CreatePaymentToken(paymentService, logg))
				r.Get("/status/{orderId}", controllers.PaymentStatus(paymentService, logg))
				r.Post("/cancel/{orderId}", controllers.CancelPayment(paymentService, logg))
			})

			// Admin surface.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))

				r.Route("/products", func(r chi.Router) {
					r.Post("/", controllers.AdminCreateProduct(productService, logg))
					r.Put("/{productId}", controllers.AdminUpdateProduct(productService, logg))
					r.Delete("/{productId}", controllers.AdminDeleteProduct(productService, logg))
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.AdminListOrders(orderService, logg))
					r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
					r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(orderService, logg))
				})

				r.Put("/store-hours", controllers.AdminUpdateStoreHours(storeHoursService, logg))
			})
		})
	})

	return r
}

func pingerOrNil(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
