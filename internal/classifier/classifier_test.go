package classifier

import (
	"sync"
	"testing"

	"github.com/rajasatyajit/EcoTide/internal/features"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

type recordingObserver struct {
	mu   sync.Mutex
	seen []models.Category
}

func (r *recordingObserver) ObserveCategory(c models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, c)
}

func TestDetector_Detect(t *testing.T) {
	detector := NewDetector(nil)

	tests := []struct {
		name     string
		title    string
		expected models.Category
	}{
		{
			name:     "Clothing via t-shirt",
			title:    "Standard Cotton T-Shirt - Regular Fit",
			expected: models.CategoryClothing,
		},
		{
			name:     "Electronics",
			title:    "Wireless Noise Cancelling Headphones",
			expected: models.CategoryElectronics,
		},
		{
			name:     "Electronics wins over clothing",
			title:    "Laptop Sleeve Shirt Pocket",
			expected: models.CategoryElectronics,
		},
		{
			name:     "Beauty oil precedes automotive",
			title:    "Car Engine Oil 5W-30",
			expected: models.CategoryBeauty,
		},
		{
			name:     "Food via organic",
			title:    "Organic Bamboo Toothbrush - Biodegradable and Sustainable",
			expected: models.CategoryFood,
		},
		{
			name:     "Garden via solar",
			title:    "Solar Garden Lights",
			expected: models.CategoryGarden,
		},
		{
			name:     "Health",
			title:    "Bamboo Fiber Yoga Mat",
			expected: models.CategoryHealth,
		},
		{
			name:     "No match",
			title:    "Disposable Plastic Cups - Single Use Party Supplies",
			expected: models.CategoryOther,
		},
		{
			name:     "Empty title",
			title:    "",
			expected: models.CategoryOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := detector.Detect(features.Normalize(tt.title))
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
			// detection is stable across calls
			if again := detector.Detect(features.Normalize(tt.title)); again != result {
				t.Errorf("Expected deterministic result %s, got %s", result, again)
			}
		})
	}
}

func TestDetector_ObserverSeesMatchesOnly(t *testing.T) {
	obs := &recordingObserver{}
	detector := NewDetector(obs)

	detector.Detect("wireless headphones")
	detector.Detect("party supplies")
	detector.Detect("cotton tshirt")

	if len(obs.seen) != 2 {
		t.Fatalf("Expected 2 observations, got %d: %v", len(obs.seen), obs.seen)
	}
	if obs.seen[0] != models.CategoryElectronics || obs.seen[1] != models.CategoryClothing {
		t.Errorf("Unexpected observations: %v", obs.seen)
	}
}

func TestRuleGrader_Grade(t *testing.T) {
	grader := NewRuleGrader(NewDetector(nil))

	tests := []struct {
		name          string
		title         string
		expectedScore float64
		expectedGrade models.Grade
	}{
		{
			name:          "Multiple excellent keywords",
			title:         "Organic Bamboo Toothbrush - Biodegradable and Sustainable",
			expectedScore: 130 * 1.1,
			expectedGrade: models.GradeA,
		},
		{
			name:          "Average clothing",
			title:         "Standard Cotton T-Shirt - Regular Fit",
			expectedScore: 50 * 0.9,
			expectedGrade: models.GradeC,
		},
		{
			name:          "Poor disposable",
			title:         "Disposable Plastic Cups - Single Use Party Supplies",
			expectedScore: 30,
			expectedGrade: models.GradeD,
		},
		{
			name:          "Very poor",
			title:         "Toxic Paint Remover - Harmful Chemical Stripper",
			expectedScore: 0,
			expectedGrade: models.GradeE,
		},
		{
			name:          "Garden multiplier lifts to A",
			title:         "Solar Garden Lights",
			expectedScore: 70 * 1.2,
			expectedGrade: models.GradeA,
		},
		{
			name:          "Hyphenated keyword still matches",
			title:         "Eco-Friendly Tote Bag",
			expectedScore: 70,
			expectedGrade: models.GradeB,
		},
		{
			name:          "Empty title",
			title:         "",
			expectedScore: 50,
			expectedGrade: models.GradeC,
		},
		{
			name:          "Non latin script",
			title:         "竹の歯ブラシ",
			expectedScore: 50,
			expectedGrade: models.GradeC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := features.NewTitle(tt.title)
			score := grader.Score(title.Normalized)
			if diff := score - tt.expectedScore; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected score %v, got %v", tt.expectedScore, score)
			}
			grade, method := grader.Grade(title)
			if grade != tt.expectedGrade {
				t.Errorf("Expected grade %s, got %s", tt.expectedGrade, grade)
			}
			if method != models.MethodRules {
				t.Errorf("Expected method %s, got %s", models.MethodRules, method)
			}
		})
	}
}

func TestRuleGrader_RepeatedKeywordCountsOnce(t *testing.T) {
	grader := NewRuleGrader(NewDetector(nil))

	once := grader.Score("organic bamboo")
	twice := grader.Score("organic organic bamboo bamboo")
	if once != twice {
		t.Errorf("Expected repeated keywords to score the same, got %v and %v", once, twice)
	}
	if n := grader.MatchCount("organic organic bamboo bamboo"); n != 2 {
		t.Errorf("Expected 2 matches, got %d", n)
	}
}

func TestRuleGrader_MatchCount(t *testing.T) {
	grader := NewRuleGrader(NewDetector(nil))

	tests := []struct {
		title    string
		expected int
	}{
		{"organic bamboo toothbrush biodegradable and sustainable", 4},
		{"standard cotton tshirt regular fit", 2},
		{"", 0},
		// nonrecyclable also contains recyclable
		{"nonrecyclable foam", 2},
	}
	for _, tt := range tests {
		if got := grader.MatchCount(tt.title); got != tt.expected {
			t.Errorf("MatchCount(%q)=%d want %d", tt.title, got, tt.expected)
		}
	}
}

func TestGradeForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected models.Grade
	}{
		{143, models.GradeA},
		{80, models.GradeA},
		{79.999, models.GradeB},
		{65, models.GradeB},
		{64.999, models.GradeC},
		{45, models.GradeC},
		{44.999, models.GradeD},
		{30, models.GradeD},
		{29.999, models.GradeE},
		{-40, models.GradeE},
	}
	for _, tt := range tests {
		if got := GradeForScore(tt.score); got != tt.expected {
			t.Errorf("GradeForScore(%v)=%s want %s", tt.score, got, tt.expected)
		}
	}
}
