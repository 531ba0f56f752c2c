package scoring

import (
	"github.com/rajasatyajit/EcoTide/internal/models"
)

const maxSuggestions = 3

var genericSuggestions = []models.Suggestion{
	{Title: "Eco-friendly alternative suggestion", Grade: models.GradeA, Reason: "Made from sustainable materials"},
}

var categorySuggestions = map[models.Category][]models.Suggestion{
	models.CategoryElectronics: {
		{Title: "Solar Powered Power Bank", Reason: "Charges from renewable energy"},
		{Title: "Refurbished Smartphone", Reason: "Extends product lifespan and avoids new manufacturing"},
		{Title: "Energy Star Certified LED Bulbs", Reason: "Uses a fraction of the energy of incandescent bulbs"},
	},
	models.CategoryClothing: {
		{Title: "Organic Cotton Fair Trade T-Shirt", Reason: "Grown without pesticides and ethically made"},
		{Title: "Hemp Blend Jeans", Reason: "Hemp needs little water and no pesticides"},
		{Title: "Recycled Polyester Jacket", Reason: "Made from post-consumer plastic bottles"},
	},
	models.CategoryFood: {
		{Title: "Organic Fair Trade Coffee", Reason: "Certified organic and ethically sourced"},
		{Title: "Local Seasonal Produce Box", Reason: "Short supply chain with minimal packaging"},
		{Title: "Beeswax Food Wraps", Reason: "Reusable replacement for plastic wrap"},
	},
	models.CategoryHome: {
		{Title: "Bamboo Kitchen Utensil Set", Reason: "Bamboo is a fast-growing renewable material"},
		{Title: "Glass Food Storage Containers", Reason: "Durable, reusable and fully recyclable"},
		{Title: "Organic Cotton Bed Sheets", Reason: "Grown without synthetic chemicals"},
	},
	models.CategoryBeauty: {
		{Title: "Zero Waste Shampoo Bar", Reason: "Plastic-free with no bottle to discard"},
		{Title: "Refillable Natural Deodorant", Reason: "Refill system cuts packaging waste"},
		{Title: "Bamboo Toothbrush", Reason: "Biodegradable handle"},
	},
	models.CategoryToys: {
		{Title: "Wooden Building Blocks", Reason: "Made from sustainably harvested wood"},
		{Title: "Organic Cotton Plush Toy", Reason: "Natural materials free of harmful chemicals"},
		{Title: "Recycled Plastic Toy Truck", Reason: "Made from recycled milk jugs"},
	},
	models.CategoryBooks: {
		{Title: "Recycled Paper Notebook", Reason: "Made from post-consumer paper"},
		{Title: "Second-Hand Book", Reason: "Reuse avoids new printing entirely"},
		{Title: "E-Book Edition", Reason: "No paper, ink or shipping required"},
	},
	models.CategoryAutomotive: {
		{Title: "Biodegradable Car Wash Soap", Reason: "Breaks down without harming waterways"},
		{Title: "Solar Car Battery Charger", Reason: "Uses renewable energy"},
		{Title: "Recycled Rubber Floor Mats", Reason: "Made from reclaimed tyres"},
	},
	models.CategoryGarden: {
		{Title: "Solar Garden Lights", Reason: "Powered entirely by sunlight"},
		{Title: "Compost Bin", Reason: "Turns food waste into soil"},
		{Title: "Organic Seed Starter Kit", Reason: "Biodegradable pots and organic seeds"},
	},
	models.CategoryHealth: {
		{Title: "Bamboo Fiber Yoga Mat", Reason: "Renewable, non-toxic materials"},
		{Title: "Stainless Steel Water Bottle", Reason: "Replaces single use plastic bottles"},
		{Title: "Organic Cotton Face Masks", Reason: "Reusable and washable"},
	},
}

// Suggestions returns up to three grade A alternatives for the given
// category, or for the title's detected category when category is empty
func (e *Engine) Suggestions(title string, category models.Category) []models.Suggestion {
	if category == "" {
		category = e.DetectCategory(title)
	}

	pool, ok := categorySuggestions[category]
	if !ok {
		pool = genericSuggestions
	}

	n := min(len(pool), maxSuggestions)
	out := make([]models.Suggestion, 0, n)
	for _, s := range pool[:n] {
		s.Grade = models.GradeA
		if ok {
			s.Category = category
		}
		out = append(out, s)
	}
	return out
}
