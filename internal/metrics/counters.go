package metrics

import (
	"sync"
	"time"
)

// Counters is an in-process Metrics implementation that keeps running totals
type Counters struct {
	mu            sync.Mutex
	predictions   map[string]int64
	fallbacks     map[string]int64
	artifactLoads map[string]int64
	batchRuns     int64
	batchItems    int64
	batchTime     time.Duration
	recoveries    int64
}

// Summary is a point-in-time copy of Counters
type Summary struct {
	Predictions   map[string]int64 `json:"predictions"`
	Fallbacks     map[string]int64 `json:"fallbacks"`
	ArtifactLoads map[string]int64 `json:"artifact_loads"`
	BatchRuns     int64            `json:"batch_runs"`
	BatchItems    int64            `json:"batch_items"`
	BatchTime     time.Duration    `json:"batch_time"`
	Recoveries    int64            `json:"recoveries"`
}

func NewCounters() *Counters {
	return &Counters{
		predictions:   make(map[string]int64),
		fallbacks:     make(map[string]int64),
		artifactLoads: make(map[string]int64),
	}
}

// RecordPrediction counts predictions keyed "method:grade"
func (c *Counters) RecordPrediction(method, grade string) {
	c.mu.Lock()
	c.predictions[method+":"+grade]++
	c.mu.Unlock()
}

func (c *Counters) RecordModelFallback(stage string) {
	c.mu.Lock()
	c.fallbacks[stage]++
	c.mu.Unlock()
}

func (c *Counters) RecordArtifactLoad(status string) {
	c.mu.Lock()
	c.artifactLoads[status]++
	c.mu.Unlock()
}

func (c *Counters) RecordBatchRun(count int, duration time.Duration) {
	c.mu.Lock()
	c.batchRuns++
	c.batchItems += int64(count)
	c.batchTime += duration
	c.mu.Unlock()
}

func (c *Counters) RecordRecovery() {
	c.mu.Lock()
	c.recoveries++
	c.mu.Unlock()
}

// Summary returns a copy of the current totals
func (c *Counters) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		Predictions:   copyCounts(c.predictions),
		Fallbacks:     copyCounts(c.fallbacks),
		ArtifactLoads: copyCounts(c.artifactLoads),
		BatchRuns:     c.batchRuns,
		BatchItems:    c.batchItems,
		BatchTime:     c.batchTime,
		Recoveries:    c.recoveries,
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
