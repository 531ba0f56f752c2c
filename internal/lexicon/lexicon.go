// Package lexicon holds the static keyword tables used by grading and
// enrichment. Keywords are written in their human form; consumers normalize
// them with the same function they apply to titles.
package lexicon

import "github.com/rajasatyajit/EcoTide/internal/models"

// TierEntry is a sustainability tier with its score delta and keywords
type TierEntry struct {
	Tier     models.Tier
	Delta    float64
	Keywords []string
}

// CategoryEntry is a product category with its detection keywords
type CategoryEntry struct {
	Category models.Category
	Keywords []string
}

// Tiers in evaluation order
var Tiers = []TierEntry{
	{
		Tier:  models.TierExcellent,
		Delta: 20,
		Keywords: []string{
			"organic", "sustainable", "eco-friendly", "recycled", "bamboo", "hemp",
			"fair trade", "carbon neutral", "biodegradable", "renewable", "solar",
			"wind power", "upcycled", "zero waste", "compostable",
		},
	},
	{
		Tier:  models.TierGood,
		Delta: 10,
		Keywords: []string{
			"recyclable", "energy efficient", "minimal packaging", "local", "natural",
			"reusable", "durable", "long-lasting", "refillable", "plant-based",
		},
	},
	{
		Tier:     models.TierAverage,
		Delta:    0,
		Keywords: []string{"standard", "conventional", "regular", "basic", "economy"},
	},
	{
		Tier:  models.TierPoor,
		Delta: -10,
		Keywords: []string{
			"disposable", "single-use", "plastic", "non-recyclable", "petroleum",
			"synthetic", "chemical", "artificial", "fast fashion", "cheap",
		},
	},
	{
		Tier:  models.TierVeryPoor,
		Delta: -20,
		Keywords: []string{
			"toxic", "harmful", "wasteful", "polluting", "destructive",
			"non-biodegradable", "excessive packaging", "planned obsolescence",
		},
	},
}

// Categories in detection order. The first category with a matching keyword wins.
var Categories = []CategoryEntry{
	{models.CategoryElectronics, []string{"phone", "laptop", "computer", "tablet", "headphones", "speaker", "tv", "camera"}},
	{models.CategoryClothing, []string{"shirt", "t-shirt", "dress", "pants", "jeans", "jacket", "shoes", "sneakers", "sweater"}},
	{models.CategoryFood, []string{"organic", "snack", "coffee", "tea", "chocolate", "nuts", "supplement", "vitamin"}},
	{models.CategoryHome, []string{"furniture", "chair", "table", "lamp", "decor", "pillow", "blanket", "storage"}},
	{models.CategoryBeauty, []string{"moisturizer", "shampoo", "soap", "lotion", "cream", "oil", "cosmetic", "perfume"}},
	{models.CategoryToys, []string{"toy", "game", "puzzle", "doll", "action figure", "board game", "educational"}},
	{models.CategoryBooks, []string{"book", "novel", "textbook", "journal", "notebook", "diary", "manual"}},
	{models.CategoryAutomotive, []string{"car", "auto", "vehicle", "tire", "oil", "brake", "engine", "battery"}},
	{models.CategoryGarden, []string{"plant", "seed", "fertilizer", "tool", "garden", "lawn", "outdoor", "solar"}},
	{models.CategoryHealth, []string{"medical", "health", "fitness", "exercise", "yoga", "protein", "supplement"}},
}

// RuleMultipliers scale the rule-based score per category; absent means 1.0
var RuleMultipliers = map[models.Category]float64{
	models.CategoryElectronics: 0.8,
	models.CategoryClothing:    0.9,
	models.CategoryFood:        1.1,
	models.CategoryHome:        1.0,
	models.CategoryBeauty:      0.95,
	models.CategoryToys:        0.85,
	models.CategoryBooks:       1.05,
	models.CategoryAutomotive:  0.7,
	models.CategoryGarden:      1.2,
	models.CategoryHealth:      1.0,
}

// CO2Base is the per-grade CO2 estimate in kg
var CO2Base = map[models.Grade]float64{
	models.GradeA: 1.2,
	models.GradeB: 2.5,
	models.GradeC: 4.8,
	models.GradeD: 8.1,
	models.GradeE: 12.5,
}

// CO2Multipliers scale the CO2 estimate per category; absent means 1.0
var CO2Multipliers = map[models.Category]float64{
	models.CategoryElectronics: 3.0,
	models.CategoryAutomotive:  5.0,
	models.CategoryClothing:    1.5,
	models.CategoryFood:        0.8,
	models.CategoryHome:        2.0,
	models.CategoryBeauty:      1.2,
	models.CategoryToys:        1.8,
	models.CategoryBooks:       0.5,
	models.CategoryGarden:      0.9,
	models.CategoryHealth:      1.1,
}

// Material and sourcing vocabularies used by enrichment
var (
	RecyclableMaterials    = []string{"metal", "aluminum", "steel", "glass", "paper", "cardboard", "recyclable"}
	NonRecyclableMaterials = []string{"composite", "mixed materials", "laminated", "foam"}
	RecyclableCategories   = []models.Category{models.CategoryElectronics, models.CategoryBooks, models.CategoryHome}
	RenewableMaterials     = []string{"bamboo", "hemp", "organic cotton", "wood", "cork", "renewable", "bio-based"}

	PackagingExcellent = []string{"minimal packaging", "plastic-free", "zero waste"}
	PackagingGood      = []string{"recyclable packaging", "cardboard"}
	PackagingPoor      = []string{"excessive packaging", "plastic packaging"}

	SupplyChainExcellent = []string{"local", "fair trade", "ethical", "local sourced"}
	SupplyChainGood      = []string{"certified", "responsible"}
)

// Messages holds three canned messages per grade
var Messages = map[models.Grade][3]string{
	models.GradeA: {
		"Excellent choice! This product supports sustainable practices.",
		"Great pick! This item has minimal environmental impact.",
		"Perfect! This product promotes a circular economy.",
	},
	models.GradeB: {
		"Good choice! This product is more sustainable than average.",
		"Nice pick! Consider reusing or recycling when done.",
		"Well done! This item has better environmental credentials.",
	},
	models.GradeC: {
		"Average sustainability. Look for eco-friendly alternatives.",
		"Consider checking for more sustainable options.",
		"This product meets basic environmental standards.",
	},
	models.GradeD: {
		"Below average sustainability. Consider alternatives.",
		"Look for products with better environmental ratings.",
		"This item could have significant environmental impact.",
	},
	models.GradeE: {
		"Poor sustainability rating. Strongly consider alternatives.",
		"This product may have high environmental impact.",
		"Look for eco-friendly alternatives to reduce your footprint.",
	},
}

// DefaultMessage is returned with the fallback result when scoring fails
const DefaultMessage = "Unable to assess sustainability. Please try again."

// SupportedCategories lists the detectable categories in detection order
func SupportedCategories() []models.Category {
	out := make([]models.Category, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, c.Category)
	}
	return out
}
