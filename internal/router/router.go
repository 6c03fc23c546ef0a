package router

import (
	"net/http"

	"urban-luxury/internal/handler"
	"urban-luxury/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth    *handler.AuthHandler
	Brand   *handler.BrandHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Upload  *handler.UploadHandler
	Event   *handler.EventHandler
	Health  *handler.HealthHandler
}

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	Verifier       middleware.TokenVerifier
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.NotFound(handler.NotFound(logger))
	r.MethodNotAllowed(handler.MethodNotAllowed(logger))

	admin := middleware.RequireAdmin(opts.Verifier, logger)
	uploadLimit := middleware.BodyLimit(opts.MaxUploadBytes)

	r.Get("/health", h.Health.Check)
	r.Get("/uploads/{name}", h.Upload.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", h.Event.Stream)

		r.Post("/admin/login", h.Auth.Login)

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", h.Brand.List)
			r.With(admin, uploadLimit).Post("/", h.Brand.Create)
			r.With(admin).Delete("/{id}", h.Brand.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/counts", h.Product.Counts)
			r.Get("/brand/{brandId}", h.Product.ListByBrand)
			r.With(admin, uploadLimit).Post("/", h.Product.Create)
			r.With(admin).Delete("/{id}", h.Product.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.With(middleware.RequireAdminUnless(opts.Verifier, logger, hasUserEmail)).Get("/", h.Order.List)
			r.Get("/{orderId}", h.Order.GetByOrderID)
			r.With(admin).Patch("/{orderId}/status", h.Order.UpdateStatus)
		})
	})

	return r
}

// hasUserEmail lets shoppers list their own orders without an admin token.
func hasUserEmail(r *http.Request) bool {
	return r.URL.Query().Get("userEmail") != ""
}
