package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/application/services"
	"stockledger/infrastructure/config"
	"stockledger/interfaces/http/rest/handlers"
	"stockledger/interfaces/http/rest/middleware"
	"stockledger/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg     *config.Config
	catalog *services.CatalogService
	assets  ports.AssetStore
	metrics *observability.Collector
	logger  *zap.Logger

	// uploadRoot is the local directory served under /uploads/
	uploadRoot string
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	catalog *services.CatalogService,
	assets ports.AssetStore,
	metrics *observability.Collector,
	logger *zap.Logger,
	uploadRoot string,
) *Router {
	return &Router{
		cfg:        cfg,
		catalog:    catalog,
		assets:     assets,
		metrics:    metrics,
		logger:     logger,
		uploadRoot: uploadRoot,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health checks and metrics
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	// Stored assets, served statically
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(rt.uploadRoot))))

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Route("/category", func(r chi.Router) {
			categoryHandler := handlers.NewCategoryHandler(rt.catalog, rt.assets, rt.cfg, rt.metrics, rt.logger)
			r.Post("/create", categoryHandler.Create)
			r.Get("/list", categoryHandler.List)
			r.Post("/delete", categoryHandler.Delete)
			r.Post("/delete-all", categoryHandler.DeleteAll)
		})

		r.Route("/product", func(r chi.Router) {
			productHandler := handlers.NewProductHandler(rt.catalog, rt.assets, rt.cfg, rt.metrics, rt.logger)
			r.Post("/create", productHandler.Create)
			r.Get("/all", productHandler.All)
			r.Get("/list/{cid}", productHandler.ListByCategory)
			r.Post("/in", productHandler.StockIn)
			r.Post("/out", productHandler.StockOut)
			r.Post("/set", productHandler.SetStock)
			r.Post("/delete", productHandler.Delete)
			r.Post("/delete-all", productHandler.DeleteAll)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
