package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/NotoMD-dev/notomed-deid/internal/http/handlers"
	httpmiddleware "github.com/NotoMD-dev/notomed-deid/internal/http/middleware"
	"github.com/NotoMD-dev/notomed-deid/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	DeidHandler        *handlers.DeidHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.DeidHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/deidentify", cfg.DeidHandler.Deidentify)
		v1.Post("/diff", cfg.DeidHandler.Diff)
	})

	return r
}
