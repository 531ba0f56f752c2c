package model

import (
	"fmt"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// Linear is a one-vs-rest linear classifier: class score = w·x + b
type Linear struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// Predict returns the index of the highest scoring class.
// Ties resolve to the lowest index.
func (l *Linear) Predict(x Vector) (int, error) {
	if len(l.Weights) == 0 {
		return 0, fmt.Errorf("classifier has no classes")
	}
	if len(l.Bias) != len(l.Weights) {
		return 0, fmt.Errorf("bias length %d does not match %d classes", len(l.Bias), len(l.Weights))
	}

	best, bestScore := -1, 0.0
	for c, row := range l.Weights {
		score := l.Bias[c]
		for idx, val := range x {
			if idx < 0 || idx >= len(row) {
				return 0, fmt.Errorf("feature %d outside class %d weights of width %d", idx, c, len(row))
			}
			score += row[idx] * val
		}
		if best < 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// Decode maps a class index back to a grade using the label table
func Decode(labels []string, idx int) (models.Grade, error) {
	if idx < 0 || idx >= len(labels) {
		return "", fmt.Errorf("%w: index %d of %d", apperrors.ErrUnknownLabel, idx, len(labels))
	}
	g, err := models.ParseGrade(labels[idx])
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUnknownLabel, err)
	}
	return g, nil
}
