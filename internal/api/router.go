// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avoronov/skillserve/internal/middleware"
)

// Router wires the handlers and middleware into an http.Handler.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router from its components.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/", router.handler.Root)
	r.Get("/health/live", router.handler.HealthLive)
	r.Get("/health/ready", router.handler.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Prediction endpoints share rate limiting and instrumentation.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Post("/predict", router.handler.Predict)
		r.Post("/predict_communities", router.handler.PredictCommunities)
		r.Post("/predict_posts", router.handler.PredictPosts)
	})

	return r
}
