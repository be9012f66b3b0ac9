// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/metrics"
)

// Cache holds the most recent full snapshot of each catalog collection and
// refreshes a snapshot via full paginated re-fetch once it is older than the
// TTL. The two collections have independent slots that never share state.
//
// Refresh is single-flight per collection: concurrent requests arriving after
// expiry serialize on the slot lock and only the first performs the fetch.
// A failed refresh leaves the previous snapshot in place; it is replaced only
// by a complete, successfully fetched one.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration

	// now is swappable for tests.
	now func() time.Time

	slots map[Collection]*cacheSlot
}

type cacheSlot struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewCache creates a cache over fetcher with one slot per collection and a
// shared TTL.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		slots: map[Collection]*cacheSlot{
			CollectionCommunities: {},
			CollectionPosts:       {},
		},
	}
}

// Get returns the current snapshot for a collection, refreshing it first if
// none exists yet or the existing one is older than the TTL. The returned
// snapshot is shared; callers must treat it as read-only.
func (c *Cache) Get(ctx context.Context, collection Collection) (*Snapshot, error) {
	slot, ok := c.slots[collection]
	if !ok {
		return nil, fmt.Errorf("unknown catalog collection %q", collection)
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.snap != nil && c.now().Sub(slot.snap.FetchedAt) <= c.ttl {
		metrics.RecordCacheHit(string(collection))
		return slot.snap, nil
	}

	items, err := c.fetcher.FetchAll(ctx, collection)
	if err != nil {
		logging.Error().Err(err).Str("collection", string(collection)).Msg("Catalog refresh failed")
		return nil, err
	}

	snap := &Snapshot{Items: items, FetchedAt: c.now()}
	slot.snap = snap
	metrics.RecordCacheRefresh(string(collection))
	return snap, nil
}
