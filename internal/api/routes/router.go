package routes

import (
	"net/http"

	"github.com/retailpulse/backend/internal/api/handlers"
	"github.com/retailpulse/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	salesHandler *handlers.SalesHandler
}

// NewRouter creates a new router
func NewRouter(salesHandler *handlers.SalesHandler) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		salesHandler: salesHandler,
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

	// Sales endpoints
	r.mux.HandleFunc("GET /api/sales", r.salesHandler.GetSales)
	r.mux.HandleFunc("GET /api/sales/filter-options", r.salesHandler.GetFilterOptions)
	r.mux.HandleFunc("GET /api/sales/summary", r.salesHandler.GetSummary)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
