// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avoronov/skillserve/internal/catalog"
)

type staticFetcher struct {
	items []catalog.Item
	err   error
}

func (f *staticFetcher) FetchAll(context.Context, catalog.Collection) ([]catalog.Item, error) {
	return f.items, f.err
}

func TestEngineRecommend(t *testing.T) {
	fetcher := &staticFetcher{items: []catalog.Item{
		{ID: 1, Skills: []string{"Python"}, Popularity: 3},
		{ID: 2, Skills: []string{"Go"}, Popularity: 8},
		{ID: 3, Skills: []string{"Python", "Go"}, Popularity: 1},
	}}
	engine := NewEngine(catalog.NewCache(fetcher, time.Minute))

	results, err := engine.Recommend(context.Background(), catalog.CollectionCommunities, []string{"python"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Exact match ranks above partial overlap.
	if results[0].ID != 1 || results[1].ID != 3 {
		t.Errorf("unexpected order: %v", results)
	}
}

func TestEngineRecommendDefaultLimit(t *testing.T) {
	items := make([]catalog.Item, 60)
	for i := range items {
		items[i] = catalog.Item{ID: int64(i + 1), Skills: []string{"Go"}}
	}
	engine := NewEngine(catalog.NewCache(&staticFetcher{items: items}, time.Minute))

	results, err := engine.Recommend(context.Background(), catalog.CollectionPosts, []string{"Go"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("limit 0 should default to %d, got %d", DefaultLimit, len(results))
	}
}

func TestEngineRecommendUpstreamFailure(t *testing.T) {
	fetchErr := &catalog.UpstreamError{Status: 503, Body: "down"}
	engine := NewEngine(catalog.NewCache(&staticFetcher{err: fetchErr}, time.Minute))

	_, err := engine.Recommend(context.Background(), catalog.CollectionCommunities, []string{"Go"}, 5)
	var ue *catalog.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
