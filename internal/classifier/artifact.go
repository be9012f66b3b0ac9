// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package classifier implements the multi-label skill classifier: loading the
// pretrained model artifacts from disk and scoring free text against them.
//
// An artifact directory holds three JSON files:
//
//	model.json       TF-IDF vectorizer + one-vs-rest linear coefficients
//	labels.json      ordered array of label strings
//	thresholds.json  optional per-label probability thresholds
//
// Artifacts are loaded once at startup and never mutated afterwards, so the
// resulting Artifact is safe to share across concurrent requests without
// synchronization.
package classifier

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/avoronov/skillserve/internal/logging"
)

// Artifact file names within the artifact directory.
const (
	ModelFileName      = "model.json"
	LabelsFileName     = "labels.json"
	ThresholdsFileName = "thresholds.json"
)

// Artifact is the immutable, process-wide classifier state: the ordered label
// list, the linear model, and one threshold per label.
type Artifact struct {
	Labels     []string
	Model      *LinearModel
	Thresholds []float64 // always len(Labels) after a successful Load
}

// Load reads the classifier artifacts from dir. The model and label files are
// required; if either is missing, Load fails with an ArtifactMissingError
// naming every absent file. The thresholds file is optional: when absent, or
// when its length does not match the label count, every label gets the
// uniform defaultThreshold. A length mismatch logs a warning but does not
// fail the load; a misaligned vector is never applied.
func Load(dir string, defaultThreshold float64) (*Artifact, error) {
	modelPath := filepath.Join(dir, ModelFileName)
	labelsPath := filepath.Join(dir, LabelsFileName)
	thresholdsPath := filepath.Join(dir, ThresholdsFileName)

	var missing []string
	for _, p := range []string{modelPath, labelsPath} {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, filepath.Base(p))
		}
	}
	if len(missing) > 0 {
		return nil, &ArtifactMissingError{Dir: dir, Missing: missing}
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		return nil, err
	}

	model, err := loadModel(modelPath)
	if err != nil {
		return nil, err
	}
	if model.NumLabels() != len(labels) {
		return nil, fmt.Errorf("model produces %d scores but %s lists %d labels", model.NumLabels(), LabelsFileName, len(labels))
	}

	thresholds := loadThresholds(thresholdsPath, len(labels), defaultThreshold)

	return &Artifact{
		Labels:     labels,
		Model:      model,
		Thresholds: thresholds,
	}, nil
}

func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", LabelsFileName, err)
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", LabelsFileName, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%s contains no labels", LabelsFileName)
	}
	return labels, nil
}

func loadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ModelFileName, err)
	}
	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ModelFileName, err)
	}
	model, err := newLinearModel(&mf)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ModelFileName, err)
	}
	return model, nil
}

// loadThresholds returns a thresholds vector of exactly labelCount entries.
// A missing file or a shape mismatch degrades to the uniform default; only a
// present-but-mismatched vector is worth a warning.
func loadThresholds(path string, labelCount int, defaultThreshold float64) []float64 {
	uniform := func() []float64 {
		t := make([]float64, labelCount)
		for i := range t {
			t[i] = defaultThreshold
		}
		return t
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return uniform()
	}

	var thresholds []float64
	if err := json.Unmarshal(data, &thresholds); err != nil {
		logging.Warn().Err(err).Str("file", ThresholdsFileName).Msg("Unparseable thresholds file, using uniform default")
		return uniform()
	}
	if len(thresholds) != labelCount {
		logging.Warn().
			Int("thresholds", len(thresholds)).
			Int("labels", labelCount).
			Msg("Thresholds length does not match label count, using uniform default")
		return uniform()
	}
	return thresholds
}
