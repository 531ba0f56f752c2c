package classifier

import (
	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/lexicon"
	"github.com/rajasatyajit/EcoTide/internal/models"
	"github.com/rajasatyajit/EcoTide/pkg/utils"
)

// CategoryObserver is notified of every category a detection matches
type CategoryObserver interface {
	ObserveCategory(c models.Category)
}

type categoryKeywords struct {
	category models.Category
	keywords []string
}

// Detector maps a normalized title to a single product category
type Detector struct {
	categories []categoryKeywords
	observer   CategoryObserver
}

// NewDetector creates a detector over the lexicon's category table.
// observer may be nil.
func NewDetector(observer CategoryObserver) *Detector {
	d := &Detector{observer: observer}
	for _, entry := range lexicon.Categories {
		d.categories = append(d.categories, categoryKeywords{
			category: entry.Category,
			keywords: features.NormalizeAll(entry.Keywords),
		})
	}
	return d
}

// Detect returns the first category, in lexicon order, with a keyword
// contained in the title, or CategoryOther when none matches
func (d *Detector) Detect(normalized string) models.Category {
	for _, c := range d.categories {
		if utils.ContainsAny(normalized, c.keywords) {
			if d.observer != nil {
				d.observer.ObserveCategory(c.category)
			}
			return c.category
		}
	}
	return models.CategoryOther
}
