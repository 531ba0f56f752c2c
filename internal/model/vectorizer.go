package model

import (
	"fmt"
	"math"
	"strings"
)

// MaxNgram is the longest n-gram a vectorizer may produce
const MaxNgram = 5

// Vector is a sparse feature vector keyed by vocabulary index
type Vector map[int]float64

// Vectorizer is a fitted TF-IDF transform over normalized titles
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	NgramMin    int            `json:"ngram_min"`
	NgramMax    int            `json:"ngram_max"`
	SublinearTF bool           `json:"sublinear_tf"`
	StopWords   []string       `json:"stop_words,omitempty"`

	stop map[string]struct{}
}

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "in",
	"is", "it", "of", "on", "or", "that", "the", "this", "to", "with",
}

// prepare builds lookup state; call before sharing the vectorizer across goroutines
func (v *Vectorizer) prepare() {
	v.stop = buildStopSet(v.StopWords)
}

func buildStopSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (v *Vectorizer) stopSet() map[string]struct{} {
	if v.stop != nil {
		return v.stop
	}
	return buildStopSet(v.StopWords)
}

// terms returns the n-grams of a normalized title after stop word removal
func (v *Vectorizer) terms(normalized string) []string {
	stop := v.stopSet()
	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if _, skip := stop[tok]; !skip {
			tokens = append(tokens, tok)
		}
	}

	lo, hi := max(v.NgramMin, 1), min(v.NgramMax, len(tokens), MaxNgram)
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Transform maps a normalized title to an L2-normalized TF-IDF vector.
// Unknown terms are ignored; a title with none yields an empty vector.
func (v *Vectorizer) Transform(normalized string) (Vector, error) {
	counts := make(Vector)
	for _, term := range v.terms(normalized) {
		idx, ok := v.Vocabulary[term]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(v.IDF) {
			return nil, fmt.Errorf("term %q index %d outside idf table of %d", term, idx, len(v.IDF))
		}
		counts[idx]++
	}

	var norm float64
	for idx, c := range counts {
		tf := c
		if v.SublinearTF {
			tf = 1 + math.Log(c)
		}
		w := tf * v.IDF[idx]
		counts[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts, nil
}

// Dims returns the feature space width
func (v *Vectorizer) Dims() int {
	return len(v.IDF)
}
