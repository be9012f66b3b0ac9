// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package metrics provides Prometheus instrumentation for Skillserve:
// API endpoint latency and throughput, classifier prediction volume,
// catalog fetch performance and cache efficiency, and circuit breaker state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Classifier Metrics
	ClassifierPredictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classifier_predictions_total",
			Help: "Total number of classifier predictions",
		},
	)

	ClassifierLabelsSelected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classifier_labels_selected",
			Help:    "Number of labels selected per prediction",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// Catalog Fetch Metrics
	CatalogFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of full paginated catalog fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)

	CatalogFetchPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_pages_total",
			Help: "Total number of catalog pages fetched",
		},
		[]string{"collection"},
	)

	CatalogFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_errors_total",
			Help: "Total number of failed catalog fetches",
		},
		[]string{"collection", "error_type"},
	)

	// Catalog Cache Metrics
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of catalog cache hits (snapshot within TTL)",
		},
		[]string{"collection"},
	)

	CatalogCacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_refreshes_total",
			Help: "Total number of catalog cache refreshes",
		},
		[]string{"collection"},
	)

	CatalogSnapshotItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_items",
			Help: "Number of items in the current catalog snapshot",
		},
		[]string{"collection"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPrediction records one classifier prediction and how many labels it
// selected.
func RecordPrediction(labelsSelected int) {
	ClassifierPredictionsTotal.Inc()
	ClassifierLabelsSelected.Observe(float64(labelsSelected))
}

// RecordCatalogFetch records a completed full paginated fetch.
func RecordCatalogFetch(collection string, pages int, items int, duration time.Duration) {
	CatalogFetchDuration.WithLabelValues(collection).Observe(duration.Seconds())
	CatalogFetchPages.WithLabelValues(collection).Add(float64(pages))
	CatalogSnapshotItems.WithLabelValues(collection).Set(float64(items))
}

// RecordCatalogFetchError records a failed catalog fetch by error type.
func RecordCatalogFetchError(collection, errorType string) {
	CatalogFetchErrors.WithLabelValues(collection, errorType).Inc()
}

// RecordCacheHit records a catalog cache hit.
func RecordCacheHit(collection string) {
	CatalogCacheHits.WithLabelValues(collection).Inc()
}

// RecordCacheRefresh records a catalog cache refresh.
func RecordCacheRefresh(collection string) {
	CatalogCacheRefreshes.WithLabelValues(collection).Inc()
}
