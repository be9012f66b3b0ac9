// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/avoronov/skillserve/internal/catalog"
	"github.com/avoronov/skillserve/internal/classifier"
	"github.com/avoronov/skillserve/internal/config"
	"github.com/avoronov/skillserve/internal/models"
	"github.com/avoronov/skillserve/internal/recommend"
)

type stubFetcher struct {
	items []catalog.Item
	err   error
}

func (f *stubFetcher) FetchAll(context.Context, catalog.Collection) ([]catalog.Item, error) {
	return f.items, f.err
}

func writeClassifierArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	model := map[string]interface{}{
		"vectorizer": map[string]interface{}{
			"vocabulary": map[string]int{"python": 0, "go": 1},
			"idf":        []float64{1, 1},
		},
		"coefficients": [][]float64{{6, -6}, {-6, 6}},
		"intercepts":   []float64{0, 0},
	}
	for name, v := range map[string]interface{}{
		classifier.ModelFileName:  model,
		classifier.LabelsFileName: []string{"python", "go"},
	} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestRouter(t *testing.T, fetcher catalog.Fetcher) http.Handler {
	t.Helper()

	artifact, err := classifier.Load(writeClassifierArtifacts(t), 0.6)
	if err != nil {
		t.Fatal(err)
	}
	engine := recommend.NewEngine(catalog.NewCache(fetcher, time.Minute))
	handler := NewHandler(classifier.NewService(artifact), engine)

	mw := NewChiMiddleware(config.SecurityConfig{
		CORSOrigins:       []string{"*"},
		RateLimitDisabled: true,
	})
	return NewRouter(handler, mw).Setup()
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodGet, "/", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s, want {\"status\":\"ok\"}", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	for _, path := range []string{"/health/live", "/health/ready"} {
		rr := doJSON(t, router, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rr.Code)
			continue
		}
		var resp models.HealthResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Status != "ok" {
			t.Errorf("%s status = %q, want ok", path, resp.Status)
		}
	}
}

func TestHealthReadyBeforeWiring(t *testing.T) {
	mw := NewChiMiddleware(config.SecurityConfig{RateLimitDisabled: true})
	router := NewRouter(NewHandler(nil, nil), mw).Setup()

	rr := doJSON(t, router, http.MethodGet, "/health/ready", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 before dependencies are wired", rr.Code)
	}
}

func TestPredictReturnsLabelArray(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodPost, "/predict", `{"description":"I write python services"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var labels []string
	if err := json.Unmarshal(rr.Body.Bytes(), &labels); err != nil {
		t.Fatalf("response is not a bare array: %v", err)
	}
	if len(labels) != 1 || labels[0] != "python" {
		t.Errorf("labels = %v, want [python]", labels)
	}
}

func TestPredictEmptyDescription(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodPost, "/predict", `{"description":""}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestPredictInvalidJSON(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodPost, "/predict", `{"description":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != models.ErrCodeInvalidJSON {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestPredictCommunities(t *testing.T) {
	fetcher := &stubFetcher{items: []catalog.Item{
		{ID: 1, Skills: []string{"Python"}, Popularity: 5},
		{ID: 2, Skills: []string{"Go"}, Popularity: 10},
	}}
	router := newTestRouter(t, fetcher)

	rr := doJSON(t, router, http.MethodPost, "/predict_communities", `{"skills":["python"],"limit":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var results []recommend.ScoreResult
	if err := json.Unmarshal(rr.Body.Bytes(), &results); err != nil {
		t.Fatalf("response is not a bare array: %v", err)
	}
	if len(results) != 1 || results[0].ID != 1 {
		t.Errorf("results = %v", results)
	}
	if results[0].Score != 1 {
		t.Errorf("score = %g, want 1", results[0].Score)
	}
}

func TestPredictCommunitiesNegativeLimit(t *testing.T) {
	fetcher := &stubFetcher{items: []catalog.Item{
		{ID: 1, Skills: []string{"Python"}, Popularity: 5},
		{ID: 2, Skills: []string{"Python"}, Popularity: 3},
	}}
	router := newTestRouter(t, fetcher)

	rr := doJSON(t, router, http.MethodPost, "/predict_communities", `{"skills":["python"],"limit":-1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("negative limit must clamp, not fail: status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var results []recommend.ScoreResult
	if err := json.Unmarshal(rr.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("expected clamp to 1 result, got %d", len(results))
	}
}

func TestPredictPostsMissingSkills(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodPost, "/predict_posts", `{"limit":5}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != models.ErrCodeValidation {
		t.Errorf("error code = %q", resp.Error.Code)
	}
}

func TestPredictCommunitiesUpstreamFailure(t *testing.T) {
	fetcher := &stubFetcher{err: &catalog.UpstreamError{Status: 502, Body: "bad gateway"}}
	router := newTestRouter(t, fetcher)

	rr := doJSON(t, router, http.MethodPost, "/predict_communities", `{"skills":["go"]}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != models.ErrCodeUpstream {
		t.Errorf("error code = %q, want %q", resp.Error.Code, models.ErrCodeUpstream)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("expected Go runtime metrics in /metrics output")
	}
}

func TestRequestIDHeaderOnResponses(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{})

	rr := doJSON(t, router, http.MethodGet, "/", "")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on every response")
	}
}
