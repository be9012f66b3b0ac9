// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/avoronov/skillserve/internal/catalog"
	"github.com/avoronov/skillserve/internal/classifier"
	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/models"
	"github.com/avoronov/skillserve/internal/recommend"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	classifier *classifier.Service
	engine     *recommend.Engine
}

// NewHandler creates a Handler over the classifier service and the
// recommendation engine.
func NewHandler(cls *classifier.Service, engine *recommend.Engine) *Handler {
	return &Handler{
		classifier: cls,
		engine:     engine,
	}
}

// Root handles GET / as a liveness ping.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "ok"})
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "ok"})
}

// HealthReady reports readiness: 200 once the classifier artifacts and the
// recommendation engine are wired, 503 before that.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.classifier == nil || h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeInternal, "Service not ready", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.HealthResponse{Status: "ok"})
}

// Predict handles POST /predict: classify a free-text description into an
// ordered list of skill labels.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Request body must be valid JSON", err)
		return
	}

	labels := h.classifier.Predict(req.Description)

	logger := logging.Ctx(r.Context())
	logger.Debug().
		Int("labels", len(labels)).
		Msg("Prediction served")

	respondJSON(w, http.StatusOK, labels)
}

// PredictCommunities handles POST /predict_communities.
func (h *Handler) PredictCommunities(w http.ResponseWriter, r *http.Request) {
	h.recommendFor(w, r, catalog.CollectionCommunities)
}

// PredictPosts handles POST /predict_posts.
func (h *Handler) PredictPosts(w http.ResponseWriter, r *http.Request) {
	h.recommendFor(w, r, catalog.CollectionPosts)
}

func (h *Handler) recommendFor(w http.ResponseWriter, r *http.Request, collection catalog.Collection) {
	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Request body must be valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	results, err := h.engine.Recommend(r.Context(), collection, req.Skills, req.Limit)
	if err != nil {
		status, code := classifyRecommendError(err)
		respondError(w, status, code, "Recommendation failed: "+err.Error(), err)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Debug().
		Str("collection", string(collection)).
		Int("results", len(results)).
		Msg("Recommendation served")

	respondJSON(w, http.StatusOK, results)
}

// classifyRecommendError maps engine errors to a status code and error code.
// Upstream failures and internal failures both surface as 500 so the client
// contract stays a single failure mode, but the error code distinguishes
// them for operators.
func classifyRecommendError(err error) (int, string) {
	var ue *catalog.UpstreamError
	var fe *catalog.UpstreamFormatError
	switch {
	case errors.As(err, &ue):
		return http.StatusInternalServerError, models.ErrCodeUpstream
	case errors.As(err, &fe):
		return http.StatusInternalServerError, models.ErrCodeUpstream
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal
	}
}
