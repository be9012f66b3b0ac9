// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package models defines the request and response shapes of the HTTP API.
package models

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	Description string `json:"description"`
}

// RecommendRequest is the body of POST /predict_communities and
// POST /predict_posts. Limit is not range-validated here: the ranking layer
// defaults 0 to 50 and clamps any other value to a minimum of 1, matching the
// catalog service's lenient contract.
type RecommendRequest struct {
	Skills []string `json:"skills" validate:"required"`
	Limit  int      `json:"limit"`
}

// APIError describes a single error condition in a machine-readable way.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse is the envelope for all non-2xx responses.
type ErrorResponse struct {
	Status string   `json:"status"`
	Error  APIError `json:"error"`
}

// HealthResponse is returned by GET / and the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// Common error codes used across handlers.
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)
