// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/playnext/internal/auth"
	"github.com/tomtom215/playnext/internal/authz"
	"github.com/tomtom215/playnext/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler  *Handler
	chi      *ChiMiddleware
	sessions *auth.SessionManager
	authz    *authz.Middleware
}

// NewRouter creates the router. The enforcer's denials are written with the
// API error envelope.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, sessions *auth.SessionManager, enforcer *authz.Enforcer) *Router {
	return &Router{
		handler:  handler,
		chi:      chiMW,
		sessions: sessions,
		authz:    authz.NewMiddleware(enforcer, respondDenied),
	}
}

// SetupChi builds the http.Handler for the whole service.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chi.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.sessions.Middleware)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})

	// Pages and auth
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders)
		r.Get("/", router.handler.Home)
		r.Get("/health", router.handler.Health)
		r.Get("/login", router.handler.Login)
		r.Get("/auth/steam/callback", router.handler.SteamCallback)
		r.Get("/logout", router.handler.Logout)
	})

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chi.RateLimit())
		r.Use(APISecurityHeaders)
		r.Use(router.authz.Authorize)

		r.Get("/games", router.handler.ListGames)
		r.Post("/games/exclude", router.handler.ExcludeGame)
		r.Post("/games/include", router.handler.IncludeGame)
		r.Post("/games/refresh", router.handler.RefreshGames)
		r.Post("/recommendations", router.handler.Recommendations)
		r.Post("/recommendations/surprise-me", router.handler.SurpriseMe)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
