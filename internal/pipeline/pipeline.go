package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/rajasatyajit/EcoTide/config"
	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/metrics"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// Scorer interface for product scoring
type Scorer interface {
	Score(title, identifier string) models.ScoreResult
}

// Scored pairs an input product with its result
type Scored struct {
	Product models.Product     `json:"product" yaml:"product"`
	Result  models.ScoreResult `json:"result" yaml:"result"`
}

// Batch scores many products concurrently with bounded workers and an
// optional rate limit
type Batch struct {
	scorer  Scorer
	limiter *rate.Limiter
	cfg     config.BatchConfig
	sem     *semaphore.Weighted
}

// New creates a new batch scorer
func New(scorer Scorer, cfg config.BatchConfig) *Batch {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))
	}

	b := &Batch{
		scorer:  scorer,
		limiter: limiter,
		cfg:     cfg,
		sem:     semaphore.NewWeighted(int64(cfg.WorkerCount)),
	}

	logger.Debug("Batch scorer initialized",
		"rate_limit", cfg.RateLimit,
		"workers", cfg.WorkerCount,
	)

	return b
}

// Run scores items and returns results in input order. If ctx is cancelled
// before every item is scored, Run returns ctx.Err() and no results.
func (b *Batch) Run(ctx context.Context, items []models.Product) ([]Scored, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.WithContext(ctx)

	log.Info("Starting batch run", "items", len(items))

	results := make([]Scored, len(items))
	g, gctx := errgroup.WithContext(ctx)

	for i := range items {
		if err := b.sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer b.sem.Release(1)

			if err := b.limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limit: %w", err)
			}
			results[i] = Scored{
				Product: items[i],
				Result:  b.scorer.Score(items[i].Title, items[i].Identifier),
			}
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn("Batch run cancelled", "error", ctxErr)
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	metrics.RecordBatchRun(len(items), duration)
	log.Info("Batch run completed",
		"items", len(items),
		"duration_ms", duration.Milliseconds(),
	)

	return results, nil
}
