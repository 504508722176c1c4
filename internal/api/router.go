// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/middleware"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/notify"
	"github.com/propkeep/propkeep/internal/store"
	"github.com/propkeep/propkeep/internal/ticket"
)

// Handler bundles the dependencies the route handlers need.
type Handler struct {
	cfg        *config.Config
	store      *store.Store
	tickets    *ticket.Manager
	dispatcher *notify.Dispatcher
	jwt        *auth.JWTManager
	logger     zerolog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, st *store.Store, tm *ticket.Manager,
	dispatcher *notify.Dispatcher, jwtManager *auth.JWTManager, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		store:      st,
		tickets:    tm,
		dispatcher: dispatcher,
		jwt:        jwtManager,
		logger:     logger,
	}
}

// Router assembles the chi route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticated := auth.Middleware(h.jwt, h.store, auth.Unauthorized(WriteUnauthorized))
	managersOnly := auth.RequireRoles(WriteForbidden,
		models.RoleOwner, models.RoleAdmin, models.RoleSeniorAdmin)
	ownerOnly := auth.RequireRoles(WriteForbidden, models.RoleOwner)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/health", h.Health)

	r.Route("/api/auth", func(r chi.Router) {
		// Brute-force protection on credential endpoints only.
		r.With(httprate.LimitByIP(h.cfg.Server.RateLimit, h.cfg.Server.RateWindow)).
			Post("/login", h.Login)
		r.With(authenticated).Get("/profile", h.Profile)
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/", h.ListTickets)
		r.Post("/", h.CreateTicket)
		r.Get("/{id}", h.GetTicket)
		r.Put("/{id}", h.UpdateTicket)
		r.Delete("/{id}", h.DeleteTicket)
		r.Post("/{id}/comments", h.AddComment)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authenticated, managersOnly)
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/{id}", h.UpdateUser)
		r.With(ownerOnly).Delete("/{id}", h.DeleteUser)
		r.Put("/{id}/reset-password", h.ResetPassword)
	})

	r.Route("/api/properties", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/", h.ListProperties)
		r.Group(func(r chi.Router) {
			r.Use(managersOnly)
			r.Post("/", h.CreateProperty)
			r.Put("/{id}", h.UpdateProperty)
			r.Delete("/{id}", h.DeleteProperty)
			r.Post("/{id}/assign-tenant", h.AssignTenant)
		})
	})

	r.Route("/api/companies", func(r chi.Router) {
		r.Use(authenticated, managersOnly)
		r.Get("/", h.ListCompanies)
		r.Post("/", h.CreateCompany)
		r.Put("/{id}", h.UpdateCompany)
		r.Delete("/{id}", h.DeleteCompany)
	})

	r.With(authenticated, managersOnly).
		Get("/api/notifications/status", h.NotificationStatus)

	return r
}
