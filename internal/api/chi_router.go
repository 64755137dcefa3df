// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tactus/internal/auth"
	"github.com/tomtom215/tactus/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	authMW        *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates the router.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	return &Router{handler: handler, authMW: authMW, chiMiddleware: chiMW}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints stay outside auth and metrics so probes are cheap
	// and can never lock themselves out.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.HealthReady)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/register", router.handler.Register)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.With(router.authMW.Authenticate).Get("/me", router.handler.Me)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		// Reads work with or without a token; writes require one (or run
		// as the shared admin when auth is disabled).
		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Optional)

			r.Get("/tactons", router.handler.ListTactons)
			r.Get("/tactons/{id}", router.handler.GetTacton)
			r.Get("/position-sets/{id}", router.handler.GetPositionSet)
			r.Get("/tags", router.handler.ListTags)
			r.Get("/body-tags", router.handler.ListBodyTags)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)

			r.Post("/tactons", router.handler.CreateTacton)
			r.Patch("/tactons/{id}", router.handler.UpdateTacton)
			r.Delete("/tactons/{id}", router.handler.DeleteTacton)

			r.Post("/tactons/{id}/tags", router.handler.AddTactonLinks)
			r.Delete("/tactons/{id}/tags", router.handler.RemoveTactonLinks)

			r.Post("/position-sets", router.handler.ResolvePositionSet)

			r.Post("/tags", router.handler.ResolveTag)
			r.Delete("/tags/{id}", router.handler.DeleteTag)
			r.Post("/body-tags", router.handler.ResolveBodyTag)
			r.Delete("/body-tags/{id}", router.handler.DeleteBodyTag)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	return r
}
