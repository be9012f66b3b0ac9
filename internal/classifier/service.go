// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package classifier

import (
	"sort"

	"github.com/avoronov/skillserve/internal/metrics"
	"github.com/avoronov/skillserve/internal/nlp"
)

// Service scores normalized text against a loaded Artifact and selects the
// labels whose probability meets their threshold. It holds no mutable state.
type Service struct {
	artifact *Artifact
}

// NewService creates a classifier service over an already-loaded artifact.
func NewService(artifact *Artifact) *Service {
	return &Service{artifact: artifact}
}

// Predict returns the selected labels for the given free text, sorted by
// probability descending; labels with equal probability keep the label list's
// original order. Text that normalizes to the empty string short-circuits to
// an empty result without invoking the model.
func (s *Service) Predict(text string) []string {
	normalized := nlp.NormalizeText(text)
	if normalized == "" {
		return []string{}
	}

	scores := s.artifact.Model.DecisionFunction(normalized)

	type selected struct {
		label string
		prob  float64
	}
	var picked []selected
	for i, score := range scores {
		prob := sigmoid(score)
		// Inclusive boundary: a probability exactly at the threshold selects.
		if prob >= s.artifact.Thresholds[i] {
			picked = append(picked, selected{label: s.artifact.Labels[i], prob: prob})
		}
	}

	sort.SliceStable(picked, func(a, b int) bool {
		return picked[a].prob > picked[b].prob
	})

	labels := make([]string, len(picked))
	for i, p := range picked {
		labels[i] = p.label
	}

	metrics.RecordPrediction(len(labels))
	return labels
}

// Labels returns the ordered label list the service classifies into.
func (s *Service) Labels() []string {
	return s.artifact.Labels
}
