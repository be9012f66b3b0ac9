// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package catalog

import "fmt"

// UpstreamError is returned when a catalog page request completes with a
// non-success HTTP status. It carries the status and response body so callers
// can distinguish an upstream outage from a local failure.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog upstream returned status %d: %s", e.Status, e.Body)
}

// UpstreamFormatError is returned when a catalog response body cannot be
// parsed as the expected structure.
type UpstreamFormatError struct {
	Collection Collection
	Err        error
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("invalid response from catalog %s endpoint: %v", e.Collection, e.Err)
}

func (e *UpstreamFormatError) Unwrap() error {
	return e.Err
}
