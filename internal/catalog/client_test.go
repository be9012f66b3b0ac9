// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, pageLimit int, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", pageLimit, 5*time.Second)
}

func TestFetchAllPagination(t *testing.T) {
	// Two full pages of 2 items, then a short page of 1.
	pages := map[string]string{
		"0": `[{"id":1,"skills":["Go"],"member_count":10},{"id":2,"skills":["Python"],"member_count":20}]`,
		"2": `[{"id":3,"skills":["C++"],"like_count":5},{"id":4,"skills":[],"member_count":1}]`,
		"4": `[{"id":5,"skills":["Rust"]}]`,
	}
	var requests int
	client := newTestClient(t, 2, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		body, ok := pages[r.URL.Query().Get("skip")]
		if !ok {
			t.Errorf("unexpected skip %q", r.URL.Query().Get("skip"))
			body = "[]"
		}
		fmt.Fprint(w, body)
	})

	items, err := client.FetchAll(context.Background(), CollectionCommunities)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if requests != 3 {
		t.Errorf("expected 3 page requests, got %d", requests)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	for i, wantID := range []int64{1, 2, 3, 4, 5} {
		if items[i].ID != wantID {
			t.Errorf("item %d has ID %d, want %d", i, items[i].ID, wantID)
		}
	}
}

func TestFetchAllPopularityFallback(t *testing.T) {
	client := newTestClient(t, 10, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id":1,"skills":[],"member_count":42,"like_count":7},
			{"id":2,"skills":[],"like_count":7},
			{"id":3,"skills":[]},
			{"id":4,"skills":[],"member_count":"15"},
			{"id":5,"skills":[],"member_count":null,"like_count":9},
			{"id":6,"skills":[],"member_count":"n/a"}
		]`)
	})

	items, err := client.FetchAll(context.Background(), CollectionPosts)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	want := []float64{42, 7, 0, 15, 0, 0}
	for i, w := range want {
		if items[i].Popularity != w {
			t.Errorf("item %d popularity = %g, want %g", i, items[i].Popularity, w)
		}
	}
}

func TestFetchAllNonListEndsPagination(t *testing.T) {
	client := newTestClient(t, 10, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detail":"no more data"}`)
	})

	items, err := client.FetchAll(context.Background(), CollectionCommunities)
	if err != nil {
		t.Fatalf("non-list body should end pagination, got error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestFetchAllUpstreamError(t *testing.T) {
	client := newTestClient(t, 10, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	})

	_, err := client.FetchAll(context.Background(), CollectionCommunities)
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", ue.Status, http.StatusBadGateway)
	}
	if ue.Body != "upstream exploded" {
		t.Errorf("body = %q", ue.Body)
	}
}

func TestFetchAllFormatError(t *testing.T) {
	client := newTestClient(t, 10, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	})

	_, err := client.FetchAll(context.Background(), CollectionPosts)
	var fe *UpstreamFormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected UpstreamFormatError, got %v", err)
	}
	if fe.Collection != CollectionPosts {
		t.Errorf("collection = %q", fe.Collection)
	}
}

func TestFetchAllEmptyFirstPage(t *testing.T) {
	var requests int
	client := newTestClient(t, 10, func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, "[]")
	})

	items, err := client.FetchAll(context.Background(), CollectionCommunities)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
	if requests != 1 {
		t.Errorf("empty page should stop pagination after 1 request, got %d", requests)
	}
}
