// Package scoring is the single entry point that grades a product title and
// composes the full sustainability result.
package scoring

import (
	"fmt"
	"time"

	"github.com/rajasatyajit/EcoTide/internal/classifier"
	"github.com/rajasatyajit/EcoTide/internal/enrich"
	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/lexicon"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/metrics"
	"github.com/rajasatyajit/EcoTide/internal/model"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/internal/stats"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// DefaultConfidence is reported with the recovery result
const DefaultConfidence = 0.1

// Grader produces a grade and the name of the method that produced it
type Grader interface {
	Grade(t features.Title) (models.Grade, string)
}

// Options configures an Engine
type Options struct {
	// Artifact enables model grading; nil means rule-based for the engine's lifetime
	Artifact *model.Artifact
	// Grader overrides grader selection entirely
	Grader Grader
	// Seed for message selection; 0 seeds from the clock
	Seed uint64
	Now  func() time.Time
}

// Engine scores product titles. It is safe for concurrent use.
type Engine struct {
	detector  *classifier.Detector
	lookup    *classifier.Detector
	rules     *classifier.RuleGrader
	grader    Grader
	enricher  *enrich.Enricher
	stats     *stats.Recorder
	modelType string
	now       func() time.Time
}

// New creates an Engine, fixing its grading mode
func New(opts Options) *Engine {
	e := &Engine{
		enricher: enrich.New(opts.Seed),
		now:      opts.Now,
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}

	e.modelType = stats.ModelTypeRules
	if opts.Artifact != nil {
		e.modelType = stats.ModelTypeML
	}
	e.stats = stats.New(e.modelType)
	e.stats.SetClock(e.now)

	e.detector = classifier.NewDetector(e.stats)
	e.lookup = classifier.NewDetector(nil)
	e.rules = classifier.NewRuleGrader(e.detector)

	switch {
	case opts.Grader != nil:
		e.grader = opts.Grader
	case opts.Artifact != nil:
		e.grader = model.NewGrader(opts.Artifact, e.rules)
	default:
		e.grader = e.rules
	}

	logger.Info("Scoring engine initialized", "model_type", e.modelType)
	return e
}

// Score grades a title and computes every derived signal. It never fails:
// any unexpected error yields DefaultResult.
func (e *Engine) Score(title, identifier string) (result models.ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordRecovery()
			logger.Error("Scoring failed; returning default result",
				"title", utils.Truncate(title, 30),
				"asin", identifier,
				"error", fmt.Sprint(r),
			)
			result = DefaultResult(e.now())
		}
	}()

	t := features.NewTitle(title)
	grade, method := e.grader.Grade(t)
	if !grade.Valid() {
		panic(fmt.Sprintf("grader %s returned invalid grade %q", method, grade))
	}

	category := e.detector.Detect(t.Normalized)
	sig := e.enricher.Enrich(t, category, grade, e.rules.MatchCount(t.Normalized))

	e.stats.Record(grade)
	metrics.RecordPrediction(method, string(grade))
	logger.Debug("Product scored",
		"title", utils.Truncate(title, 30),
		"asin", identifier,
		"category", category,
		"grade", grade,
		"method", method,
	)

	return models.ScoreResult{
		Grade:              grade,
		CO2Impact:          sig.CO2Impact,
		Recyclable:         sig.Recyclable,
		RenewableMaterials: sig.RenewableMaterials,
		PackagingScore:     sig.PackagingScore,
		SupplyChainScore:   sig.SupplyChainScore,
		GreenMessage:       sig.GreenMessage,
		Confidence:         sig.Confidence,
		Timestamp:          e.now(),
	}
}

// ScoreProduct scores a product record
func (e *Engine) ScoreProduct(p models.Product) models.ScoreResult {
	return e.Score(p.Title, p.Identifier)
}

// DefaultResult is the fixed result returned when scoring fails
func DefaultResult(ts time.Time) models.ScoreResult {
	return models.ScoreResult{
		Grade:              models.GradeC,
		CO2Impact:          models.AssessmentUnknown,
		Recyclable:         false,
		RenewableMaterials: false,
		PackagingScore:     models.AssessmentUnknown,
		SupplyChainScore:   models.AssessmentUnknown,
		GreenMessage:       lexicon.DefaultMessage,
		Confidence:         DefaultConfidence,
		Timestamp:          ts,
	}
}

// Statistics returns a snapshot of this engine's counters
func (e *Engine) Statistics() models.Statistics {
	return e.stats.Snapshot()
}

// Recorder exposes the counters for publishing
func (e *Engine) Recorder() *stats.Recorder {
	return e.stats
}

// ModelType reports the grading mode fixed at construction
func (e *Engine) ModelType() string {
	return e.modelType
}

// Categories lists the detectable categories in detection order
func (e *Engine) Categories() []models.Category {
	return lexicon.SupportedCategories()
}

// DetectCategory resolves a title's category without recording it
func (e *Engine) DetectCategory(title string) models.Category {
	return e.lookup.Detect(features.Normalize(title))
}
