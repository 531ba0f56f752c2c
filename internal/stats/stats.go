// Package stats owns the scoring counters and shares snapshots of them
// across processes through Redis.
package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rajasatyajit/EcoTide/internal/lexicon"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// Reported grader modes
const (
	ModelTypeML    = "ML"
	ModelTypeRules = "Rule-based"
)

// Recorder counts predictions per grade and remembers detected categories.
// Counters are updated atomically; the category set behind a narrow lock.
type Recorder struct {
	total  atomic.Int64
	grades [5]atomic.Int64

	mu         sync.Mutex
	categories map[models.Category]struct{}

	modelType string
	now       func() time.Time
}

// New creates an empty Recorder reporting the given grader mode
func New(modelType string) *Recorder {
	return &Recorder{
		categories: make(map[models.Category]struct{}),
		modelType:  modelType,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the snapshot clock
func (r *Recorder) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Record counts one prediction
func (r *Recorder) Record(g models.Grade) {
	r.total.Add(1)
	if i := g.Rank(); i >= 0 {
		r.grades[i].Add(1)
	}
}

// ObserveCategory adds a detected category to the seen set
func (r *Recorder) ObserveCategory(c models.Category) {
	r.mu.Lock()
	r.categories[c] = struct{}{}
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the counters
func (r *Recorder) Snapshot() models.Statistics {
	s := models.Statistics{
		TotalPredictions:  r.total.Load(),
		GradeDistribution: make(map[models.Grade]int64, len(r.grades)),
		ModelType:         r.modelType,
		LastUpdated:       r.now(),
	}
	for i, g := range models.Grades() {
		s.GradeDistribution[g] = r.grades[i].Load()
	}

	r.mu.Lock()
	seen := make(map[models.Category]struct{}, len(r.categories))
	for c := range r.categories {
		seen[c] = struct{}{}
	}
	r.mu.Unlock()
	s.CategoriesSeen = orderCategories(seen)
	return s
}

// orderCategories lists a category set in detection order, other last
func orderCategories(set map[models.Category]struct{}) []models.Category {
	out := make([]models.Category, 0, len(set))
	for _, c := range append(lexicon.SupportedCategories(), models.CategoryOther) {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
