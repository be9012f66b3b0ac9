// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/avoronov/skillserve/internal/logging"
	"github.com/avoronov/skillserve/internal/metrics"
)

// BreakerClient wraps a Fetcher with a circuit breaker. While the circuit is
// open, fetches fail fast instead of hammering an unavailable upstream. The
// breaker never retries a request.
//
// DETERMINISM NOTE: the breaker uses real time for its interval and timeout
// calculations. Tests should exercise the wrapped Fetcher directly.
type BreakerClient struct {
	inner Fetcher
	cb    *gobreaker.CircuitBreaker[[]Item]
	name  string
}

// Ensure BreakerClient implements Fetcher
var _ Fetcher = (*BreakerClient)(nil)

// NewBreakerClient wraps fetcher with a circuit breaker.
// Breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(fetcher Fetcher) *BreakerClient {
	cbName := "catalog-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]Item](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerClient{
		inner: fetcher,
		cb:    cb,
		name:  cbName,
	}
}

// FetchAll delegates to the wrapped Fetcher through the circuit breaker.
func (b *BreakerClient) FetchAll(ctx context.Context, collection Collection) ([]Item, error) {
	items, err := b.cb.Execute(func() ([]Item, error) {
		return b.inner.FetchAll(ctx, collection)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("collection", string(collection)).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return items, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
