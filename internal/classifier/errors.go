// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package classifier

import (
	"fmt"
	"strings"
)

// ArtifactMissingError is returned by Load when one or more required artifact
// files are absent from the artifact directory. Missing lists every absent
// required file, not just the first one found.
type ArtifactMissingError struct {
	Dir     string
	Missing []string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("missing artifacts in %s: %s (expected %s and %s, optional %s)",
		e.Dir, strings.Join(e.Missing, ", "), ModelFileName, LabelsFileName, ThresholdsFileName)
}
