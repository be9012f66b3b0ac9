// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package classifier

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// wordPattern matches word tokens of two or more letters/digits, mirroring
// the tokenization the model was trained with.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_]+`)

// LinearModel is a TF-IDF vectorizer combined with a one-vs-rest linear
// classifier. It maps a normalized text to one independent raw decision score
// per label. The model is immutable after construction and safe for
// concurrent use.
type LinearModel struct {
	vocabulary map[string]int // token -> feature index
	idf        []float64      // length V
	coef       [][]float64    // L rows of length V
	intercepts []float64      // length L
}

// modelFile is the on-disk JSON layout of model.json.
type modelFile struct {
	Vectorizer struct {
		Vocabulary map[string]int `json:"vocabulary"`
		IDF        []float64      `json:"idf"`
	} `json:"vectorizer"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// newLinearModel validates the decoded model file and builds a LinearModel.
// Shape violations are load-time errors: a misaligned model must never score.
func newLinearModel(mf *modelFile) (*LinearModel, error) {
	features := len(mf.Vectorizer.IDF)
	if features == 0 {
		return nil, fmt.Errorf("model has no features (empty idf vector)")
	}
	for token, idx := range mf.Vectorizer.Vocabulary {
		if idx < 0 || idx >= features {
			return nil, fmt.Errorf("vocabulary index %d for token %q out of range [0,%d)", idx, token, features)
		}
	}
	labels := len(mf.Coefficients)
	if labels == 0 {
		return nil, fmt.Errorf("model has no coefficient rows")
	}
	if len(mf.Intercepts) != labels {
		return nil, fmt.Errorf("intercept count %d does not match coefficient rows %d", len(mf.Intercepts), labels)
	}
	for i, row := range mf.Coefficients {
		if len(row) != features {
			return nil, fmt.Errorf("coefficient row %d has length %d, want %d", i, len(row), features)
		}
	}

	return &LinearModel{
		vocabulary: mf.Vectorizer.Vocabulary,
		idf:        mf.Vectorizer.IDF,
		coef:       mf.Coefficients,
		intercepts: mf.Intercepts,
	}, nil
}

// NumLabels returns the number of decision scores the model produces.
func (m *LinearModel) NumLabels() int {
	return len(m.coef)
}

// DecisionFunction returns one raw decision score per label for the given
// normalized text. Tokens outside the training vocabulary contribute nothing;
// a text with no known tokens scores each label with its intercept alone.
func (m *LinearModel) DecisionFunction(text string) []float64 {
	counts := m.termCounts(text)

	// TF-IDF with L2 normalization, kept sparse: only indices with nonzero
	// term counts participate.
	weights := make(map[int]float64, len(counts))
	var sumSquares float64
	for idx, tf := range counts {
		w := tf * m.idf[idx]
		weights[idx] = w
		sumSquares += w * w
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range weights {
			weights[idx] /= norm
		}
	}

	scores := make([]float64, len(m.coef))
	for l, row := range m.coef {
		s := m.intercepts[l]
		for idx, w := range weights {
			s += row[idx] * w
		}
		scores[l] = s
	}
	return scores
}

// termCounts tokenizes the text and counts occurrences of in-vocabulary terms.
func (m *LinearModel) termCounts(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := m.vocabulary[token]; ok {
			counts[idx]++
		}
	}
	return counts
}

// sigmoid converts a raw decision score to an independent probability in (0,1).
func sigmoid(score float64) float64 {
	return 1.0 / (1.0 + math.Exp(-score))
}
