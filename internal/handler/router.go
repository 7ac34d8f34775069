package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/geneql/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig wires the query service routes
type RouterConfig struct {
	Logger         *slog.Logger
	Executor       Executor
	Authenticator  *middleware.Authenticator
	AuditLogs      AuditLogReader
	HealthChecks   map[string]HealthCheck
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the chi router for the query service. Audit log routes
// are mounted only when AuditLogs is set.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.APIKeyHeader},
		MaxAge:         300,
	}))

	r.Get("/health", Health(cfg.HealthChecks))

	queries := NewQueryHandler(cfg.Executor)

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Authenticator.Middleware)
		r.Use(middleware.AuditRequest)

		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/query", queries.Query)
			r.Post("/check", queries.Check)
			r.Post("/grant", queries.Grant)
			r.Post("/revoke", queries.Revoke)
		})

		if cfg.AuditLogs != nil {
			audit := NewQueryAuditLogHandler(cfg.AuditLogs)
			r.Get("/audit", audit.GetAuditLogs)
			r.Get("/audit/{id}", audit.GetAuditLogByID)
		}
	})

	return r
}
