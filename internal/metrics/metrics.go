package metrics

import (
	"sync"
	"time"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordPrediction(method, grade string)
	RecordModelFallback(stage string)
	RecordArtifactLoad(status string)
	RecordBatchRun(count int, duration time.Duration)
	RecordRecovery()
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordPrediction(method, grade string)            {}
func (m *NoOpMetrics) RecordModelFallback(stage string)                 {}
func (m *NoOpMetrics) RecordArtifactLoad(status string)                 {}
func (m *NoOpMetrics) RecordBatchRun(count int, duration time.Duration) {}
func (m *NoOpMetrics) RecordRecovery()                                  {}

var (
	mu            sync.RWMutex
	globalMetrics Metrics = &NoOpMetrics{}
)

// Init resets metrics to the no-op implementation
func Init() {
	SetDefault(&NoOpMetrics{})
}

// SetDefault replaces the global metrics implementation
func SetDefault(m Metrics) {
	if m == nil {
		m = &NoOpMetrics{}
	}
	mu.Lock()
	globalMetrics = m
	mu.Unlock()
}

func current() Metrics {
	mu.RLock()
	defer mu.RUnlock()
	return globalMetrics
}

// RecordPrediction records a completed prediction by scoring method and grade
func RecordPrediction(method, grade string) {
	current().RecordPrediction(method, grade)
}

// RecordModelFallback records a model inference failure that fell back to rules
func RecordModelFallback(stage string) {
	current().RecordModelFallback(stage)
}

// RecordArtifactLoad records the outcome of loading a trained artifact
func RecordArtifactLoad(status string) {
	current().RecordArtifactLoad(status)
}

// RecordBatchRun records a batch scoring run
func RecordBatchRun(count int, duration time.Duration) {
	current().RecordBatchRun(count, duration)
}

// RecordRecovery records a scoring call that returned the default result
func RecordRecovery() {
	current().RecordRecovery()
}
