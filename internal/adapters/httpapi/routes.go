// internal/adapters/httpapi/routes.go
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"movielinks/internal/platform/logx"
	"movielinks/internal/platform/rate"
)

// RouterOptions configures SetupRoutes.
type RouterOptions struct {
	// CORSOrigins lists allowed cross-origin callers; "*" allows any.
	CORSOrigins []string

	// Limiter throttles /search and /suggest per client IP; nil disables it.
	Limiter *rate.KeyedLimiter

	Logger logx.Logger
}

// SetupRoutes configures all routes and wraps them in the middleware chain.
func SetupRoutes(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = handler.logger
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	limited := rateLimitMiddleware(opts.Limiter, logger)

	// Page and assets
	r.HandleFunc("/", handler.Index).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/static/").
		Handler(http.FileServer(http.FS(handler.assets))).
		Methods(http.MethodGet, http.MethodHead)

	// API
	r.Handle("/search", limited(http.HandlerFunc(handler.Search))).Methods(http.MethodPost)
	r.Handle("/suggest", limited(http.HandlerFunc(handler.Suggest))).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	// Wrapped outside the router: 404, 405 and preflights pass through too.
	var h http.Handler = r
	h = corsMiddleware(opts.CORSOrigins)(h)
	h = securityHeadersMiddleware(h)
	h = loggingMiddleware(logger)(h)
	return h
}
