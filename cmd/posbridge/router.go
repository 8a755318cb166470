package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"posbridge/internal/audit"
	"posbridge/internal/handler"
	"posbridge/internal/mw"
	"posbridge/internal/service"
	"posbridge/internal/tool"
)

type deps struct {
	jwtSecret string
	auth      *service.AuthService
	registry  *tool.Registry
	services  tool.Services
	store     *audit.Store
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handler.HealthHandler(d.store.Enabled()))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(120, time.Minute))

		r.Post("/auth/token", handler.TokenHandler(d.auth))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(d.jwtSecret))

			r.Get("/tools", handler.ListToolsHandler(d.registry))
			r.Post("/tools/{name}", handler.CallToolHandler(d.registry))
			r.Get("/reports/{kind}/export", handler.ExportHandler(d.services.Reports, d.services.Labor))
			r.Get("/invocations", handler.InvocationsHandler(d.store))
		})
	})

	return r
}
