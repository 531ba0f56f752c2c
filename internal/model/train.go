package model

import (
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// ModelTypeCentroid identifies artifacts produced by Train
const ModelTypeCentroid = "nearest_centroid"

// Sample is a labelled training title
type Sample struct {
	Title string
	Grade models.Grade
}

// TrainOptions controls the fitted vectorizer
type TrainOptions struct {
	NgramMin    int
	NgramMax    int
	MaxFeatures int // 0 keeps every term
	MinDF       int
	SublinearTF bool
	StopWords   []string
	Now         func() time.Time
}

// DefaultTrainOptions mirrors the settings the service ships with
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		NgramMin:    1,
		NgramMax:    2,
		MaxFeatures: 1000,
		MinDF:       1,
		SublinearTF: true,
		StopWords:   defaultStopWords,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// Train fits a TF-IDF vectorizer and a nearest-centroid classifier
func Train(samples []Sample, opts TrainOptions) (*Artifact, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no training samples", apperrors.ErrInvalidInput)
	}
	if opts.NgramMin < 1 || opts.NgramMax < opts.NgramMin || opts.NgramMax > MaxNgram {
		return nil, apperrors.ValidationError{Field: "ngram", Message: fmt.Sprintf("invalid range [%d,%d]", opts.NgramMin, opts.NgramMax)}
	}
	if opts.MinDF < 1 {
		opts.MinDF = 1
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	var errs apperrors.MultiError
	for i, s := range samples {
		if !s.Grade.Valid() {
			errs.Add(apperrors.ValidationError{Field: fmt.Sprintf("samples[%d].grade", i), Message: fmt.Sprintf("invalid grade %q", s.Grade)})
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	v := Vectorizer{
		NgramMin:    opts.NgramMin,
		NgramMax:    opts.NgramMax,
		SublinearTF: opts.SublinearTF,
		StopWords:   append([]string(nil), opts.StopWords...),
	}
	v.prepare()

	normalized := make([]string, len(samples))
	df := make(map[string]int)
	for i, s := range samples {
		normalized[i] = features.Normalize(s.Title)
		seen := make(map[string]struct{})
		for _, term := range v.terms(normalized[i]) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	vocab := selectVocabulary(df, opts.MinDF, opts.MaxFeatures)
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: training titles produced no terms", apperrors.ErrInvalidInput)
	}

	n := float64(len(samples))
	v.Vocabulary = make(map[string]int, len(vocab))
	v.IDF = make([]float64, len(vocab))
	for i, term := range vocab {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	labels := presentLabels(samples)
	classIndex := make(map[models.Grade]int, len(labels))
	for i, l := range labels {
		classIndex[models.Grade(l)] = i
	}

	weights := make([][]float64, len(labels))
	for i := range weights {
		weights[i] = make([]float64, len(vocab))
	}
	perClass := make([]int, len(labels))
	vectors := make([]Vector, len(samples))
	for i, s := range samples {
		x, err := v.Transform(normalized[i])
		if err != nil {
			return nil, fmt.Errorf("transform sample %d: %w", i, err)
		}
		vectors[i] = x
		c := classIndex[s.Grade]
		perClass[c]++
		for idx, val := range x {
			weights[c][idx] += val
		}
	}
	for c, row := range weights {
		var norm float64
		for idx := range row {
			row[idx] /= float64(perClass[c])
			norm += row[idx] * row[idx]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range row {
				row[idx] /= norm
			}
		}
	}

	a := &Artifact{
		Vectorizer: v,
		Classifier: Linear{Weights: weights, Bias: make([]float64, len(labels))},
		Labels:     labels,
	}

	correct := 0
	for i, s := range samples {
		idx, err := a.Classifier.Predict(vectors[i])
		if err == nil && labels[idx] == string(s.Grade) {
			correct++
		}
	}

	a.Metadata = Metadata{
		TrainedAt:       opts.Now(),
		ModelType:       ModelTypeCentroid,
		Classes:         append([]string(nil), labels...),
		TrainingSamples: len(samples),
		Accuracy:        float64(correct) / n,
	}
	return a, nil
}

// selectVocabulary keeps terms with df >= minDF, the most frequent first
// (alphabetical on ties), capped at limit, and returns them sorted alphabetically
func selectVocabulary(df map[string]int, minDF, limit int) []string {
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count >= minDF {
			terms = append(terms, term)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	sort.Strings(terms)
	return terms
}

// presentLabels returns the grades that occur in samples, best first
func presentLabels(samples []Sample) []string {
	present := make(map[models.Grade]bool)
	for _, s := range samples {
		present[s.Grade] = true
	}
	var labels []string
	for _, g := range models.Grades() {
		if present[g] {
			labels = append(labels, string(g))
		}
	}
	return labels
}
