// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package recommend

import (
	"context"

	"github.com/avoronov/skillserve/internal/catalog"
)

// DefaultLimit is the result count used when the caller does not specify one.
const DefaultLimit = 50

// Engine ties the catalog cache to the vectorization pipeline. It holds no
// per-request state; everything derived from a snapshot is rebuilt for each
// call.
type Engine struct {
	cache *catalog.Cache
}

// NewEngine creates a recommendation engine over a catalog cache.
func NewEngine(cache *catalog.Cache) *Engine {
	return &Engine{cache: cache}
}

// Recommend ranks a collection's items against the supplied skills and
// returns the top max(1, limit) results, with limit 0 meaning DefaultLimit.
// The snapshot is refreshed first if it is stale; a failed refresh fails the
// whole request.
func (e *Engine) Recommend(ctx context.Context, collection catalog.Collection, skills []string, limit int) ([]ScoreResult, error) {
	if limit == 0 {
		limit = DefaultLimit
	}

	snap, err := e.cache.Get(ctx, collection)
	if err != nil {
		return nil, err
	}

	vocab := BuildVocab(snap.Items)
	matrix, ids, popularities := VectorizeAll(snap.Items, vocab)
	query := QueryVector(skills, vocab)

	return Rank(query, matrix, ids, popularities, limit), nil
}
