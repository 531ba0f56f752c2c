package models

import (
	"fmt"
	"strings"
	"time"
)

// Grade is an ordinal sustainability rating, A best
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
)

var grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE}

// Grades returns all grades from best to worst
func Grades() []Grade {
	out := make([]Grade, len(grades))
	copy(out, grades)
	return out
}

// Valid reports whether g is one of A..E
func (g Grade) Valid() bool {
	return g.Rank() >= 0
}

// Rank returns 0 for A through 4 for E, or -1 for an invalid grade
func (g Grade) Rank() int {
	for i, v := range grades {
		if v == g {
			return i
		}
	}
	return -1
}

// ParseGrade parses a grade letter, case-insensitively
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("invalid grade %q", s)
	}
	return g, nil
}

// Category is a coarse product classification
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryHome        Category = "home"
	CategoryBeauty      Category = "beauty"
	CategoryToys        Category = "toys"
	CategoryBooks       Category = "books"
	CategoryAutomotive  Category = "automotive"
	CategoryGarden      Category = "garden"
	CategoryHealth      Category = "health"
	CategoryOther       Category = "other"
)

// Tier is a sustainability sentiment bucket of keywords
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
	TierVeryPoor  Tier = "very_poor"
)

// Assessment vocabulary shared by packaging and supply chain scores
const (
	AssessmentExcellent = "Excellent"
	AssessmentGood      = "Good"
	AssessmentAverage   = "Average"
	AssessmentPoor      = "Poor"
	AssessmentUnknown   = "Unknown"
)

// Scoring methods
const (
	MethodModel = "ml_model"
	MethodRules = "rule_based"
)

// ScoreResult is the complete output record returned for one title
type ScoreResult struct {
	Grade              Grade     `json:"grade" yaml:"grade"`
	CO2Impact          string    `json:"co2_impact" yaml:"co2_impact"`
	Recyclable         bool      `json:"recyclable" yaml:"recyclable"`
	RenewableMaterials bool      `json:"renewable_materials" yaml:"renewable_materials"`
	PackagingScore     string    `json:"packaging_score" yaml:"packaging_score"`
	SupplyChainScore   string    `json:"supply_chain_score" yaml:"supply_chain_score"`
	GreenMessage       string    `json:"green_message" yaml:"green_message"`
	Confidence         float64   `json:"confidence" yaml:"confidence"`
	Timestamp          time.Time `json:"timestamp" yaml:"timestamp"`
}

// Statistics is a read-only snapshot of scoring counters
type Statistics struct {
	TotalPredictions  int64           `json:"total_predictions" yaml:"total_predictions"`
	GradeDistribution map[Grade]int64 `json:"grade_distribution" yaml:"grade_distribution"`
	CategoriesSeen    []Category      `json:"categories_seen" yaml:"categories_seen"`
	ModelType         string          `json:"model_type,omitempty" yaml:"model_type,omitempty"`
	LastUpdated       time.Time       `json:"last_updated" yaml:"last_updated"`
}

// Suggestion is a more sustainable alternative to a scored product
type Suggestion struct {
	Title    string   `json:"title" yaml:"title"`
	Grade    Grade    `json:"grade" yaml:"grade"`
	Reason   string   `json:"reason" yaml:"reason"`
	Category Category `json:"category" yaml:"category"`
}

// Product is a title with an optional marketplace identifier
type Product struct {
	Title      string `json:"product_title" yaml:"product_title"`
	Identifier string `json:"asin,omitempty" yaml:"asin,omitempty"`
}
