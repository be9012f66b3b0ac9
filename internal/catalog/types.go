// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package catalog fetches and caches the externally-hosted content catalog
// (communities and posts) that recommendations are ranked against.
//
// The upstream catalog service exposes a paginated read endpoint per
// collection. A full snapshot of each collection is fetched page by page and
// held in a TTL cache; snapshots are immutable once built and replaced
// wholesale on refresh.
package catalog

import "time"

// Collection names the two upstream catalog collections.
type Collection string

const (
	CollectionCommunities Collection = "communities"
	CollectionPosts       Collection = "posts"
)

// Item is one catalog entry as received from the upstream API, validated once
// at the fetch boundary. Immutable once placed in a Snapshot.
type Item struct {
	ID int64

	// Skills holds the raw skill strings as received; normalization happens
	// per request when the vocabulary is built.
	Skills []string

	// Popularity is the member count, falling back to the like count,
	// defaulting to 0 when both are absent or non-numeric.
	Popularity float64
}

// Snapshot is a complete, immutable copy of one collection at a point in
// time. Callers must not mutate Items.
type Snapshot struct {
	Items     []Item
	FetchedAt time.Time
}
