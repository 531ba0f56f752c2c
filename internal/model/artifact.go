// Package model holds the trained text-classification artifact and the
// grader that consults it.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/metrics"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// Inference stages reported in InferenceError
const (
	StageVectorize = "vectorize"
	StageClassify  = "classify"
	StageDecode    = "decode"
)

// Metadata describes how an artifact was produced
type Metadata struct {
	TrainedAt       time.Time `json:"trained_at" yaml:"trained_at"`
	ModelType       string    `json:"model_type" yaml:"model_type"`
	Classes         []string  `json:"classes" yaml:"classes"`
	TrainingSamples int       `json:"training_samples" yaml:"training_samples"`
	Accuracy        float64   `json:"accuracy" yaml:"accuracy"`
	Fingerprint     string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// Artifact bundles a vectorizer, a classifier and its label decoder
type Artifact struct {
	Metadata   Metadata   `json:"metadata"`
	Vectorizer Vectorizer `json:"vectorizer"`
	Classifier Linear     `json:"classifier"`
	Labels     []string   `json:"labels"`
}

// Predict grades a normalized title
func (a *Artifact) Predict(normalized string) (models.Grade, error) {
	x, err := a.Vectorizer.Transform(normalized)
	if err != nil {
		return "", apperrors.InferenceError{Stage: StageVectorize, Err: err}
	}
	idx, err := a.Classifier.Predict(x)
	if err != nil {
		return "", apperrors.InferenceError{Stage: StageClassify, Err: err}
	}
	g, err := Decode(a.Labels, idx)
	if err != nil {
		return "", apperrors.InferenceError{Stage: StageDecode, Err: err}
	}
	return g, nil
}

// Validate checks that every part of the artifact agrees on shape
func (a *Artifact) Validate() error {
	var errs apperrors.MultiError

	v := &a.Vectorizer
	if len(v.IDF) == 0 {
		errs.Add(apperrors.ValidationError{Field: "vectorizer.idf", Message: "must not be empty"})
	}
	if v.NgramMin < 1 || v.NgramMax < v.NgramMin || v.NgramMax > MaxNgram {
		errs.Add(apperrors.ValidationError{Field: "vectorizer.ngram", Message: fmt.Sprintf("invalid range [%d,%d]", v.NgramMin, v.NgramMax)})
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			errs.Add(apperrors.ValidationError{Field: "vectorizer.vocabulary", Message: fmt.Sprintf("term %q has index %d outside %d", term, idx, len(v.IDF))})
			break
		}
	}

	if len(a.Labels) == 0 {
		errs.Add(apperrors.ValidationError{Field: "labels", Message: "must not be empty"})
	}
	for _, l := range a.Labels {
		if _, err := models.ParseGrade(l); err != nil {
			errs.Add(apperrors.ValidationError{Field: "labels", Message: err.Error()})
		}
	}

	c := &a.Classifier
	if len(c.Weights) != len(a.Labels) {
		errs.Add(apperrors.ValidationError{Field: "classifier.weights", Message: fmt.Sprintf("%d rows for %d labels", len(c.Weights), len(a.Labels))})
	}
	if len(c.Bias) != len(c.Weights) {
		errs.Add(apperrors.ValidationError{Field: "classifier.bias", Message: fmt.Sprintf("%d values for %d rows", len(c.Bias), len(c.Weights))})
	}
	for i, row := range c.Weights {
		if len(row) != len(v.IDF) {
			errs.Add(apperrors.ValidationError{Field: "classifier.weights", Message: fmt.Sprintf("row %d has width %d, want %d", i, len(row), len(v.IDF))})
			break
		}
	}

	if a.Metadata.Fingerprint != "" {
		fp, err := a.fingerprint()
		if err != nil {
			errs.Add(err)
		} else if fp != a.Metadata.Fingerprint {
			errs.Add(apperrors.ValidationError{Field: "metadata.fingerprint", Message: "does not match artifact contents"})
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidArtifact, err)
	}
	a.Vectorizer.prepare()
	return nil
}

func (a *Artifact) fingerprint() (string, error) {
	payload, err := json.Marshal(struct {
		Vectorizer Vectorizer `json:"vectorizer"`
		Classifier Linear     `json:"classifier"`
		Labels     []string   `json:"labels"`
	}{a.Vectorizer, a.Classifier, a.Labels})
	if err != nil {
		return "", fmt.Errorf("marshal fingerprint payload: %w", err)
	}
	return utils.HashBytes(payload), nil
}

// LoadArtifact reads and validates an artifact file. Either a complete,
// usable artifact or an error is returned.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ArtifactError{Path: path, Stage: "read", Err: err}
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, apperrors.ArtifactError{Path: path, Stage: "decode", Err: err}
	}

	if err := a.Validate(); err != nil {
		return nil, apperrors.ArtifactError{Path: path, Stage: "validate", Err: err}
	}
	return &a, nil
}

// SaveArtifact stamps the fingerprint and writes the artifact as JSON
func SaveArtifact(path string, a *Artifact) error {
	fp, err := a.fingerprint()
	if err != nil {
		return err
	}
	a.Metadata.Fingerprint = fp

	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

// LoadTrainedArtifact is the startup hook: it returns a usable artifact or
// nil, in which case the caller runs in rule-based mode for its lifetime.
func LoadTrainedArtifact(path string) *Artifact {
	if path == "" {
		logger.Info("No artifact path configured; using rule-based scoring")
		metrics.RecordArtifactLoad("disabled")
		return nil
	}

	a, err := LoadArtifact(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("Trained artifact not found; using rule-based scoring", "path", path)
			metrics.RecordArtifactLoad("missing")
			return nil
		}
		logger.Warn("Trained artifact unusable; scoring degraded to rule-based mode", "path", path, "error", err)
		metrics.RecordArtifactLoad("invalid")
		return nil
	}

	logger.Info("Trained artifact loaded",
		"path", path,
		"model_type", a.Metadata.ModelType,
		"classes", a.Metadata.Classes,
		"features", a.Vectorizer.Dims(),
		"trained_at", a.Metadata.TrainedAt,
	)
	metrics.RecordArtifactLoad("ok")
	return a
}
