// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/avoronov/skillserve/internal/config"
)

// ChiMiddleware bundles the Chi-compatible middleware factories built from
// the security configuration.
type ChiMiddleware struct {
	corsHandler       func(http.Handler) http.Handler
	rateLimitRequests int
	rateLimitWindow   time.Duration
	rateLimitDisabled bool
}

// NewChiMiddleware builds the middleware factories from the security config.
func NewChiMiddleware(sec config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: sec.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{
		corsHandler:       corsHandler,
		rateLimitRequests: sec.RateLimitRequests,
		rateLimitWindow:   sec.RateLimitWindow,
		rateLimitDisabled: sec.RateLimitDisabled,
	}
}

// CORS returns the go-chi/cors middleware. It must be mounted globally so
// OPTIONS preflight requests are handled before routing.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.corsHandler
}

// RateLimit returns an IP-keyed go-chi/httprate limiter, or a no-op when
// rate limiting is disabled.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.rateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		m.rateLimitRequests,
		m.rateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
