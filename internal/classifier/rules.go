package classifier

import (
	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/lexicon"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// BaseScore is the neutral starting score of the rule-based grader
const BaseScore = 50.0

// Grade thresholds, inclusive lower bounds
var thresholds = []struct {
	min   float64
	grade models.Grade
}{
	{80, models.GradeA},
	{65, models.GradeB},
	{45, models.GradeC},
	{30, models.GradeD},
}

type tierKeywords struct {
	tier     models.Tier
	delta    float64
	keywords []string
}

// RuleGrader grades titles deterministically from keyword tiers and
// category multipliers
type RuleGrader struct {
	tiers    []tierKeywords
	detector *Detector
}

// NewRuleGrader creates a rule-based grader using detector for categories
func NewRuleGrader(detector *Detector) *RuleGrader {
	g := &RuleGrader{detector: detector}
	for _, entry := range lexicon.Tiers {
		g.tiers = append(g.tiers, tierKeywords{
			tier:     entry.Tier,
			delta:    entry.Delta,
			keywords: features.NormalizeAll(entry.Keywords),
		})
	}
	return g
}

// Score returns the numeric rule score for a normalized title: the base
// score plus every matching keyword's tier delta, scaled by the category
// multiplier
func (g *RuleGrader) Score(normalized string) float64 {
	score := BaseScore
	for _, tier := range g.tiers {
		score += tier.delta * float64(utils.CountContained(normalized, tier.keywords))
	}

	category := g.detector.Detect(normalized)
	if m, ok := lexicon.RuleMultipliers[category]; ok {
		score *= m
	}
	return score
}

// MatchCount returns how many tier keywords, across all tiers, the title contains
func (g *RuleGrader) MatchCount(normalized string) int {
	n := 0
	for _, tier := range g.tiers {
		n += utils.CountContained(normalized, tier.keywords)
	}
	return n
}

// GradeNormalized grades an already normalized title
func (g *RuleGrader) GradeNormalized(normalized string) models.Grade {
	return GradeForScore(g.Score(normalized))
}

// Grade implements the scoring grader contract
func (g *RuleGrader) Grade(t features.Title) (models.Grade, string) {
	return g.GradeNormalized(t.Normalized), models.MethodRules
}

// GradeForScore maps a numeric score onto a grade
func GradeForScore(score float64) models.Grade {
	for _, th := range thresholds {
		if score >= th.min {
			return th.grade
		}
	}
	return models.GradeE
}
