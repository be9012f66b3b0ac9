// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/models"
	"github.com/avoronov/skillserve/internal/validation"
)

// sanitizeLogValue escapes control characters so attacker-controlled strings
// cannot forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON encodes v as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends a structured error envelope and logs the cause.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.ErrorResponse{
		Status: "error",
		Error: models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// validateRequest validates a request struct, returning an APIError suitable
// for a 400 response when validation fails.
func validateRequest(v interface{}) *models.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: verr.Error(),
	}
}
