package http

import (
	"net/http"

	"hostprobe/internal/shared/filestorages"
	"hostprobe/internal/shared/loggers"
	"hostprobe/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// RouterOptions holds the collaborators of the diagnostic routes.
type RouterOptions struct {
	Registry     *metrics.Registry
	Assets       filestorages.FileStorage
	HostIdentity string
	Logger       loggers.Logger

	// Instrument wraps every route, including unmatched paths. Optional.
	Instrument func(http.Handler) http.Handler
}

// NewRouter creates and configures the HTTP router.
func NewRouter(opts RouterOptions) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, opts.Logger, opts.Instrument)

	// Initialize handlers
	healthHandler := NewHealthHandler()
	infoHandler := NewInfoHandler(opts.HostIdentity)
	metricsHandler := NewMetricsHandler(opts.Registry)
	staticHandler := NewStaticHandler(opts.Assets)

	// Routes
	router.Get("/health", errorHandlingAdapter(healthHandler))
	router.Get("/info", errorHandlingAdapter(infoHandler))
	router.Get("/metrics", errorHandlingAdapter(metricsHandler))
	router.Get("/*", errorHandlingAdapter(staticHandler))

	router.NotFound(errorHandlingAdapter(AppHttpHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return errNotFound(nil)
	})))
	router.MethodNotAllowed(errorHandlingAdapter(AppHttpHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return errMethodNotAllowed()
	})))

	return router
}
