package routes

import (
	"net/http"

	"github.com/bebektakip/carefinder/internal/api/handlers"
	"github.com/bebektakip/carefinder/internal/api/middleware"
	"github.com/bebektakip/carefinder/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	providerHandler *handlers.ProviderHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(providerHandler *handlers.ProviderHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		providerHandler: providerHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Provider search endpoints

	r.mux.HandleFunc("GET /api/providers/nearby", r.providerHandler.SearchNearby)

	r.mux.HandleFunc("GET /api/providers/search", r.providerHandler.SearchByText)

	r.mux.HandleFunc("GET /api/providers/state", r.providerHandler.GetState)

	// Admin endpoints

	r.mux.HandleFunc("POST /api/admin/cache/clear", r.providerHandler.ClearCache)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
