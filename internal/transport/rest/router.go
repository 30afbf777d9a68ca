package rest

import (
	"log/slog"
	"net/http"

	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/Rutuja-Parab/policyzen/internal/transport/middleware"
	"github.com/Rutuja-Parab/policyzen/internal/transport/swagger"
	applog "github.com/Rutuja-Parab/policyzen/pkg/logger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const APIPrefix = "/api"

// RouteMounter is implemented by every resource handler.
type RouteMounter interface {
	Routes(r chi.Router)
}

// Handlers holds one mounter per resource. Nil entries are skipped.
type Handlers struct {
	Auth         RouteMounter
	Companies    RouteMounter
	Employees    RouteMounter
	Students     RouteMounter
	Vessels      RouteMounter
	Vehicles     RouteMounter
	Entities     RouteMounter
	Policies     RouteMounter
	Endorsements RouteMounter
	Documents    RouteMounter
	Dashboard    RouteMounter
	Search       RouteMounter
	AuditLogs    RouteMounter
}

type Options struct {
	AllowedOrigins []string
	OpenAPIPath    string
	MetricsEnabled bool
	MetricsPath    string
}

func RegisterAllRoutes(router *chi.Mux, db Pinger, handlers Handlers, opts Options, logger *slog.Logger) {
	if logger == nil {
		logger = applog.LoggerWrapper()
	}
	healthHandler := NewHealthHandler(transport.NewBaseHandler(logger), db)

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.Actor)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if opts.MetricsEnabled {
		router.Use(middleware.Metrics)
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	if opts.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/", healthHandler.root)
		r.Get("/health", healthHandler.health)
		r.Get("/ping", healthHandler.ping)

		mount(r, "/auth", handlers.Auth)
		mount(r, "/companies", handlers.Companies)
		mount(r, "/employees", handlers.Employees)
		mount(r, "/students", handlers.Students)
		mount(r, "/vessels", handlers.Vessels)
		mount(r, "/vehicles", handlers.Vehicles)
		mount(r, "/entities", handlers.Entities)
		mount(r, "/policies", handlers.Policies)
		mount(r, "/endorsements", handlers.Endorsements)
		mount(r, "/documents", handlers.Documents)
		mount(r, "/dashboard", handlers.Dashboard)
		mount(r, "/search", handlers.Search)
		mount(r, "/audit-logs", handlers.AuditLogs)
	})
}

func mount(r chi.Router, pattern string, h RouteMounter) {
	if h == nil {
		return
	}
	r.Route(pattern, h.Routes)
}
