package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ZattoxSan23/tienda-catalog/internal/config"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/handler"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/middleware"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/response"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	categoryHandler *handler.CategoryHandler
	productHandler  *handler.ProductHandler
	reviewHandler   *handler.ReviewHandler
	logger          *logger.Logger
	cfg             *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	reviewHandler *handler.ReviewHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		categoryHandler: categoryHandler,
		productHandler:  productHandler,
		reviewHandler:   reviewHandler,
		logger:          log,
		cfg:             cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-User-Role"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Auth())

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", rt.categoryHandler.Create)
			r.Get("/", rt.categoryHandler.List)
			r.Get("/names", rt.categoryHandler.ListNames)
			r.Get("/{id}", rt.categoryHandler.GetByID)
			r.Put("/{id}", rt.categoryHandler.Update)
			r.Put("/{id}/toggle", rt.categoryHandler.ToggleActive)
			r.Delete("/{id}", rt.categoryHandler.Delete)
			r.Get("/{id}/products", rt.productHandler.ListByCategoryID)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", rt.productHandler.Create)
			r.Get("/", rt.productHandler.List)
			r.Get("/featured", rt.productHandler.ListFeatured)
			r.Get("/brands", rt.productHandler.ListBrands)
			r.Get("/category/{name}", rt.productHandler.ListByCategoryName)
			r.Get("/{id}", rt.productHandler.GetByID)
			r.Put("/{id}", rt.productHandler.Update)
			r.Put("/{id}/stock", rt.productHandler.UpdateStock)
			r.Delete("/{id}", rt.productHandler.Delete)
			r.Post("/{id}/reviews", rt.reviewHandler.Create)
			r.Get("/{id}/reviews", rt.reviewHandler.ListByProduct)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
