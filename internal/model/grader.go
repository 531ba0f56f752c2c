package model

import (
	"errors"
	"fmt"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/metrics"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// Fallback grades a title when the model cannot
type Fallback interface {
	Grade(t features.Title) (models.Grade, string)
}

// Grader grades titles with a trained artifact and defers to a fallback,
// for that call only, whenever inference fails
type Grader struct {
	artifact *Artifact
	fallback Fallback
}

// NewGrader creates a model-backed grader
func NewGrader(artifact *Artifact, fallback Fallback) *Grader {
	return &Grader{artifact: artifact, fallback: fallback}
}

// Grade implements the scoring grader contract
func (g *Grader) Grade(t features.Title) (grade models.Grade, method string) {
	defer func() {
		if r := recover(); r != nil {
			g.fallBack(t, "panic", fmt.Errorf("%v", r))
			grade, method = g.fallback.Grade(t)
		}
	}()

	if g.artifact == nil {
		g.fallBack(t, "load", apperrors.ErrModelUnavailable)
		return g.fallback.Grade(t)
	}

	grade, err := g.artifact.Predict(t.Normalized)
	if err != nil {
		stage := "unknown"
		var ie apperrors.InferenceError
		if errors.As(err, &ie) {
			stage = ie.Stage
		}
		g.fallBack(t, stage, err)
		return g.fallback.Grade(t)
	}
	return grade, models.MethodModel
}

func (g *Grader) fallBack(t features.Title, stage string, err error) {
	metrics.RecordModelFallback(stage)
	logger.Warn("Model inference failed; using rule-based grade",
		"stage", stage,
		"title", utils.Truncate(t.Raw, 30),
		"error", err,
	)
}
