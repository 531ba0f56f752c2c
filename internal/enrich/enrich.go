// Package enrich derives the secondary ScoreResult signals from a title,
// its category and its grade.
package enrich

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/lexicon"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// Confidence bounds
const (
	ConfidenceBase    = 0.5
	ConfidenceMax     = 0.95
	ConfidenceMin     = 0.05
	keywordBonusCap   = 0.4
	keywordsPerStep   = 5.0
	detailBonus       = 0.1
	detailedWordCount = 4
)

// Signals is every derived field of a ScoreResult except grade and timestamp
type Signals struct {
	CO2Impact          string
	Recyclable         bool
	RenewableMaterials bool
	PackagingScore     string
	SupplyChainScore   string
	GreenMessage       string
	Confidence         float64
}

// Enricher computes signals. It is safe for concurrent use.
type Enricher struct {
	recyclable    []string
	nonRecyclable []string
	renewable     []string
	pkgExcellent  []string
	pkgGood       []string
	pkgPoor       []string
	scExcellent   []string
	scGood        []string

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an Enricher. A zero seed seeds message selection from the clock.
func New(seed uint64) *Enricher {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Enricher{
		recyclable:    features.NormalizeAll(lexicon.RecyclableMaterials),
		nonRecyclable: features.NormalizeAll(lexicon.NonRecyclableMaterials),
		renewable:     features.NormalizeAll(lexicon.RenewableMaterials),
		pkgExcellent:  features.NormalizeAll(lexicon.PackagingExcellent),
		pkgGood:       features.NormalizeAll(lexicon.PackagingGood),
		pkgPoor:       features.NormalizeAll(lexicon.PackagingPoor),
		scExcellent:   features.NormalizeAll(lexicon.SupplyChainExcellent),
		scGood:        features.NormalizeAll(lexicon.SupplyChainGood),
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Enrich computes all signals for a graded title. matches is the number of
// distinct tier keywords found in the title.
func (e *Enricher) Enrich(t features.Title, category models.Category, grade models.Grade, matches int) Signals {
	return Signals{
		CO2Impact:          CO2(grade, category),
		Recyclable:         e.Recyclable(t.Normalized, category),
		RenewableMaterials: e.Renewable(t.Normalized),
		PackagingScore:     e.Packaging(t.Normalized),
		SupplyChainScore:   e.SupplyChain(t.Normalized),
		GreenMessage:       e.Message(grade),
		Confidence:         Confidence(matches, t.WordCount()),
	}
}

// CO2 formats the per-grade estimate scaled by the category multiplier
func CO2(grade models.Grade, category models.Category) string {
	base, ok := lexicon.CO2Base[grade]
	if !ok {
		base = lexicon.CO2Base[models.GradeC]
	}
	mult, ok := lexicon.CO2Multipliers[category]
	if !ok {
		mult = 1.0
	}
	return fmt.Sprintf("%.1f kg", base*mult)
}

// Recyclable checks recyclable materials first, then non-recyclable ones,
// then falls back to the category default
func (e *Enricher) Recyclable(normalized string, category models.Category) bool {
	if utils.ContainsAny(normalized, e.recyclable) {
		return true
	}
	if utils.ContainsAny(normalized, e.nonRecyclable) {
		return false
	}
	for _, c := range lexicon.RecyclableCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Renewable reports whether the title names a renewable material
func (e *Enricher) Renewable(normalized string) bool {
	return utils.ContainsAny(normalized, e.renewable)
}

// Packaging assesses packaging, best match first
func (e *Enricher) Packaging(normalized string) string {
	switch {
	case utils.ContainsAny(normalized, e.pkgExcellent):
		return models.AssessmentExcellent
	case utils.ContainsAny(normalized, e.pkgGood):
		return models.AssessmentGood
	case utils.ContainsAny(normalized, e.pkgPoor):
		return models.AssessmentPoor
	default:
		return models.AssessmentAverage
	}
}

// SupplyChain assesses sourcing, best match first
func (e *Enricher) SupplyChain(normalized string) string {
	switch {
	case utils.ContainsAny(normalized, e.scExcellent):
		return models.AssessmentExcellent
	case utils.ContainsAny(normalized, e.scGood):
		return models.AssessmentGood
	default:
		return models.AssessmentUnknown
	}
}

// Confidence is 0.5 plus a keyword bonus of up to 0.4 and a 0.1 bonus for
// titles of four or more words, kept within [ConfidenceMin, ConfidenceMax]
func Confidence(matches, words int) float64 {
	c := ConfidenceBase + min(float64(matches)/keywordsPerStep, keywordBonusCap)
	if words >= detailedWordCount {
		c += detailBonus
	}
	return max(ConfidenceMin, min(c, ConfidenceMax))
}

// Message picks one of the grade's canned messages at random
func (e *Enricher) Message(grade models.Grade) string {
	pool, ok := lexicon.Messages[grade]
	if !ok {
		pool = lexicon.Messages[models.GradeC]
	}
	e.mu.Lock()
	i := e.rng.IntN(len(pool))
	e.mu.Unlock()
	return pool[i]
}
