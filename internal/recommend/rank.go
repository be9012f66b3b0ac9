// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package recommend

import (
	"math"
	"sort"
)

// ScoreResult is one ranked catalog item: its id and cosine similarity to
// the query.
type ScoreResult struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// cosine computes the cosine similarity between two equal-length vectors.
// If either vector has zero norm, the similarity is defined as 0 and no
// division is performed.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every matrix row against the query vector and returns the top
// max(1, k) items ordered by (similarity descending, popularity descending);
// remaining ties preserve original row order. A matrix with zero rows or
// zero columns yields an empty result.
func Rank(query []float64, matrix [][]float64, ids []int64, popularities []float64, k int) []ScoreResult {
	if len(matrix) == 0 || len(query) == 0 {
		return []ScoreResult{}
	}

	scores := make([]float64, len(matrix))
	for i, row := range matrix {
		scores[i] = cosine(query, row)
	}

	order := make([]int, len(matrix))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if scores[ia] != scores[ib] {
			return scores[ia] > scores[ib]
		}
		return popularities[ia] > popularities[ib]
	})

	if k < 1 {
		k = 1
	}
	if k > len(order) {
		k = len(order)
	}

	results := make([]ScoreResult, k)
	for i := 0; i < k; i++ {
		idx := order[i]
		results[i] = ScoreResult{ID: ids[idx], Score: scores[idx]}
	}
	return results
}
