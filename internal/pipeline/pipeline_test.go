package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rajasatyajit/EcoTide/config"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// MockScorer grades titles by their first letter and tracks concurrency
type MockScorer struct {
	delay   time.Duration
	active  atomic.Int32
	peak    atomic.Int32
	mu      sync.Mutex
	seenIDs []string
}

func (m *MockScorer) Score(title, identifier string) models.ScoreResult {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	m.seenIDs = append(m.seenIDs, identifier)
	m.mu.Unlock()

	return models.ScoreResult{Grade: models.Grade(strings.ToUpper(title[:1])), CO2Impact: title}
}

func products(n int) []models.Product {
	grades := []string{"a", "b", "c", "d", "e"}
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			Title:      fmt.Sprintf("%s-title-%d", grades[i%len(grades)], i),
			Identifier: fmt.Sprintf("ID%03d", i),
		}
	}
	return out
}

func TestNew(t *testing.T) {
	logger.InitWithWriter(io.Discard, "error", "text")

	scorer := &MockScorer{}
	b := New(scorer, config.BatchConfig{WorkerCount: 0})
	if b == nil {
		t.Fatal("Expected batch instance, got nil")
	}
	if b.scorer != scorer {
		t.Error("Scorer not set correctly")
	}
	if b.cfg.WorkerCount != 1 {
		t.Errorf("Expected worker count clamped to 1, got %d", b.cfg.WorkerCount)
	}
}

func TestBatch_RunPreservesOrder(t *testing.T) {
	scorer := &MockScorer{delay: time.Millisecond}
	b := New(scorer, config.BatchConfig{WorkerCount: 4})

	items := products(25)
	results, err := b.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("Expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if r.Product != items[i] {
			t.Errorf("Result %d: expected product %v, got %v", i, items[i], r.Product)
		}
		if r.Result.CO2Impact != items[i].Title {
			t.Errorf("Result %d: expected result for %s, got %s", i, items[i].Title, r.Result.CO2Impact)
		}
	}
	if len(scorer.seenIDs) != len(items) {
		t.Errorf("Expected %d identifiers passed through, got %d", len(items), len(scorer.seenIDs))
	}
}

func TestBatch_RunBoundsConcurrency(t *testing.T) {
	scorer := &MockScorer{delay: 5 * time.Millisecond}
	b := New(scorer, config.BatchConfig{WorkerCount: 3})

	if _, err := b.Run(context.Background(), products(20)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if peak := scorer.peak.Load(); peak > 3 {
		t.Errorf("Expected at most 3 concurrent scorers, got %d", peak)
	}
}

func TestBatch_RunRateLimited(t *testing.T) {
	scorer := &MockScorer{}
	b := New(scorer, config.BatchConfig{WorkerCount: 4, RateLimit: 50})

	start := time.Now()
	if _, err := b.Run(context.Background(), products(60)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// 50 burst tokens, then 10 more at 50/s
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("Expected rate limiting to slow the run, took %v", elapsed)
	}
}

func TestBatch_RunCancelled(t *testing.T) {
	scorer := &MockScorer{delay: 20 * time.Millisecond}
	b := New(scorer, config.BatchConfig{WorkerCount: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	results, err := b.Run(ctx, products(50))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
	if results != nil {
		t.Errorf("Expected no results on cancellation, got %d", len(results))
	}
}

func TestBatch_RunEmpty(t *testing.T) {
	b := New(&MockScorer{}, config.BatchConfig{WorkerCount: 2})
	results, err := b.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestReadItems(t *testing.T) {
	in := "# products\n" +
		"Solar Garden Lights\tB0001\n" +
		"\n" +
		"Bamboo Toothbrush\n" +
		"   Plastic Cups  \t  B0003  \n" +
		"\tB0004\n"

	items, err := ReadItems(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []models.Product{
		{Title: "Solar Garden Lights", Identifier: "B0001"},
		{Title: "Bamboo Toothbrush"},
		{Title: "Plastic Cups", Identifier: "B0003"},
	}
	if len(items) != len(expected) {
		t.Fatalf("Expected %d items, got %d: %v", len(expected), len(items), items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("Item %d: expected %v, got %v", i, expected[i], items[i])
		}
	}
}
