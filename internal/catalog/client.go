// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/metrics"
)

// Fetcher retrieves a complete catalog collection. Both Client and
// BreakerClient implement this interface.
type Fetcher interface {
	FetchAll(ctx context.Context, collection Collection) ([]Item, error)
}

// Ensure Client implements Fetcher
var _ Fetcher = (*Client)(nil)

// Client is an HTTP client for the upstream catalog API. Pages are fetched
// strictly sequentially with a fixed page size; no retries are performed at
// this layer.
type Client struct {
	baseURL    string
	token      string
	pageLimit  int
	httpClient *http.Client
}

// NewClient creates a catalog API client.
//
// Parameters:
//   - baseURL: catalog service URL, e.g. https://catalog.example.org
//   - token: optional bearer token sent with each page request
//   - pageLimit: fixed page size for paginated fetches
//   - timeout: per-page request timeout
func NewClient(baseURL, token string, pageLimit int, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		token:     token,
		pageLimit: pageLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// itemDTO is the upstream JSON shape of one catalog item. Popularity fields
// are decoded leniently: a non-numeric value behaves as if absent.
type itemDTO struct {
	ID          int64      `json:"id"`
	Skills      []string   `json:"skills"`
	MemberCount flexNumber `json:"member_count"`
	LikeCount   flexNumber `json:"like_count"`
}

// flexNumber records whether the field was present and its numeric value.
// Numbers and numeric strings decode to their value; null and any other
// shape decode to 0 without failing the page.
type flexNumber struct {
	value   float64
	present bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	f.present = true
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			f.value = v
		}
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.value = v
	}
	return nil
}

// popularity resolves the item popularity: member count first, like count as
// the fallback, 0 when neither is usable.
func (d *itemDTO) popularity() float64 {
	if d.MemberCount.present {
		return d.MemberCount.value
	}
	return d.LikeCount.value
}

// FetchAll retrieves every item of a collection via sequential page requests
// with increasing skip offsets. The final page is signaled by a page shorter
// than the page limit, or by a response body that is valid JSON but not a
// list (treated as end-of-data, not an error).
func (c *Client) FetchAll(ctx context.Context, collection Collection) ([]Item, error) {
	var items []Item
	skip := 0
	pages := 0
	start := time.Now()

	for {
		page, isList, err := c.fetchPage(ctx, collection, skip)
		if err != nil {
			return nil, err
		}
		if !isList {
			break
		}
		pages++
		for _, dto := range page {
			items = append(items, Item{
				ID:         dto.ID,
				Skills:     dto.Skills,
				Popularity: dto.popularity(),
			})
		}
		if len(page) < c.pageLimit {
			break
		}
		skip += c.pageLimit
	}

	metrics.RecordCatalogFetch(string(collection), pages, len(items), time.Since(start))
	logging.Debug().
		Str("collection", string(collection)).
		Int("pages", pages).
		Int("items", len(items)).
		Msg("Catalog fetch completed")

	return items, nil
}

// fetchPage requests one page. The second return value reports whether the
// response body was a JSON list.
func (c *Client) fetchPage(ctx context.Context, collection Collection, skip int) ([]itemDTO, bool, error) {
	url := fmt.Sprintf("%s/%s/?skip=%d&limit=%d", c.baseURL, collection, skip, c.pageLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCatalogFetchError(string(collection), "transport")
		return nil, false, fmt.Errorf("catalog page request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordCatalogFetchError(string(collection), "transport")
		return nil, false, fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordCatalogFetchError(string(collection), "status")
		return nil, false, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		metrics.RecordCatalogFetchError(string(collection), "format")
		return nil, false, &UpstreamFormatError{Collection: collection, Err: fmt.Errorf("body is not valid JSON")}
	}

	// A valid JSON body that is not an array ends the pagination.
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, nil
	}

	var page []itemDTO
	if err := json.Unmarshal(body, &page); err != nil {
		metrics.RecordCatalogFetchError(string(collection), "format")
		return nil, false, &UpstreamFormatError{Collection: collection, Err: err}
	}
	return page, true, nil
}
