package model

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

var seedTitles = map[models.Grade][]string{
	models.GradeA: {
		"Organic Bamboo Toothbrush - Biodegradable and Sustainable",
		"Solar Powered LED String Lights - Eco Friendly Garden Lighting",
		"Recycled Ocean Plastic Water Bottle - Zero Waste",
		"Organic Cotton Fair Trade T-Shirt - Sustainable Fashion",
		"Bamboo Fiber Yoga Mat - Eco-Friendly Exercise Equipment",
		"Compostable Phone Case - Biodegradable Protection",
		"Hemp Seed Oil Moisturizer - Natural Organic Skincare",
		"Upcycled Denim Tote Bag - Sustainable Shopping Bag",
		"Solar Battery Charger - Renewable Energy Power Bank",
		"Organic Beeswax Food Wraps - Zero Waste Kitchen",
	},
	models.GradeB: {
		"Stainless Steel Water Bottle - Reusable and Durable",
		"Energy Efficient LED Light Bulbs - Long Lasting",
		"Recycled Paper Notebook - Sustainable Office Supplies",
		"Natural Wool Sweater - Durable and Warm",
		"Refillable Ink Pen - Reduced Waste Writing",
		"Ceramic Travel Mug - Reusable Coffee Cup",
		"Wooden Kitchen Utensils - Natural and Durable",
		"Glass Food Storage Containers - Reusable Kitchen",
		"Cotton Canvas Sneakers - Durable Footwear",
		"Natural Loofah Sponge - Biodegradable Cleaning",
	},
	models.GradeC: {
		"Standard Cotton T-Shirt - Regular Fit",
		"Basic Plastic Storage Box - Household Organization",
		"Conventional Laundry Detergent - Standard Formula",
		"Regular Denim Jeans - Classic Fit",
		"Standard Ceramic Mug - Kitchen Drinkware",
		"Basic Polyester Pillow - Standard Comfort",
		"Regular Plastic Tupperware - Food Storage",
		"Standard Paper Towels - Household Cleaning",
		"Basic Acrylic Paint Set - Art Supplies",
		"Regular Synthetic Carpet - Home Flooring",
	},
	models.GradeD: {
		"Disposable Plastic Cups - Single Use Party Supplies",
		"Fast Fashion Polyester Dress - Trendy Clothing",
		"Plastic Disposable Razors - Single Use Shaving",
		"Synthetic Microfiber Cloth - Chemical Cleaning",
		"Plastic Shopping Bags - Disposable Grocery Bags",
		"Single Use Coffee Pods - Disposable K-Cups",
		"Plastic Food Containers - Disposable Packaging",
		"Synthetic Leather Jacket - Artificial Material",
		"Disposable Paper Plates - Single Use Dinnerware",
		"Plastic Cutlery Set - Disposable Utensils",
	},
	models.GradeE: {
		"Toxic Paint Remover - Harmful Chemical Stripper",
		"Non-Recyclable Foam Packaging - Wasteful Shipping",
		"Planned Obsolescence Electronics - Short Lifespan Phone",
		"Excessive Plastic Packaging Toy - Wasteful Wrapping",
		"Chemical Pesticide Spray - Harmful Garden Treatment",
		"Non-Biodegradable Glitter - Environmental Pollutant",
		"Single Use Plastic Straws - Ocean Polluting Drinking",
		"Toxic Nail Polish - Harmful Chemical Beauty",
		"Fast Fashion Polyester Shirt - Polluting Clothing",
		"Disposable Electronic Vape - Wasteful Device",
	},
}

// SeedSamples returns the built-in labelled corpus, ten titles per grade
func SeedSamples() []Sample {
	var out []Sample
	for _, g := range models.Grades() {
		for _, title := range seedTitles[g] {
			out = append(out, Sample{Title: title, Grade: g})
		}
	}
	return out
}

// ReadSamplesCSV parses product_title,sustainability_grade rows.
// A header row naming product_title is skipped.
func ReadSamplesCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out  []Sample
		errs apperrors.MultiError
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "product_title") {
			continue
		}
		if len(rec) < 2 {
			errs.Add(apperrors.ValidationError{Field: fmt.Sprintf("line %d", line), Message: "expected title and grade"})
			continue
		}
		g, err := models.ParseGrade(rec[1])
		if err != nil {
			errs.Add(apperrors.ValidationError{Field: fmt.Sprintf("line %d", line), Message: err.Error()})
			continue
		}
		title := strings.TrimSpace(rec[0])
		if title == "" {
			errs.Add(apperrors.ValidationError{Field: fmt.Sprintf("line %d", line), Message: "empty title"})
			continue
		}
		out = append(out, Sample{Title: title, Grade: g})
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
