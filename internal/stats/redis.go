package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/rajasatyajit/EcoTide/internal/logger"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

// Snapshot hash fields
const (
	fieldTotal      = "total"
	fieldGradePfx   = "grade:"
	fieldCategories = "categories"
	fieldModelType  = "model_type"
	fieldUpdated    = "updated_at"
)

// ModelTypeMixed is reported when instances disagree on grader mode
const ModelTypeMixed = "mixed"

// Snapshotter yields the statistics to publish
type Snapshotter interface {
	Snapshot() models.Statistics
}

// NewClient parses a redis URL and verifies the server is reachable
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Publisher periodically writes a local snapshot to <prefix>:<instance-id>
type Publisher struct {
	client     *redis.Client
	source     Snapshotter
	prefix     string
	instanceID string
	interval   time.Duration
	ttl        time.Duration
}

// NewPublisher creates a publisher with a fresh instance ID
func NewPublisher(client *redis.Client, source Snapshotter, prefix string, interval, ttl time.Duration) *Publisher {
	return &Publisher{
		client:     client,
		source:     source,
		prefix:     prefix,
		instanceID: uuid.NewString(),
		interval:   interval,
		ttl:        ttl,
	}
}

// Key returns the hash this instance writes to
func (p *Publisher) Key() string {
	return p.prefix + ":" + p.instanceID
}

// Publish writes the current snapshot once
func (p *Publisher) Publish(ctx context.Context) error {
	s := p.source.Snapshot()
	values := map[string]any{
		fieldTotal:      s.TotalPredictions,
		fieldCategories: joinCategories(s.CategoriesSeen),
		fieldModelType:  s.ModelType,
		fieldUpdated:    s.LastUpdated.UTC().Format(time.RFC3339Nano),
	}
	for g, n := range s.GradeDistribution {
		values[fieldGradePfx+string(g)] = n
	}

	key := p.Key()
	pipe := p.client.TxPipeline()
	pipe.HSet(ctx, key, values)
	if p.ttl > 0 {
		pipe.Expire(ctx, key, p.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish stats %s: %w", key, err)
	}
	return nil
}

// Run publishes on every tick until ctx is cancelled, then publishes a final snapshot
func (p *Publisher) Run(ctx context.Context) {
	log := logger.Component("stats").With("key", p.Key())
	log.Info("Starting stats publisher", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := p.Publish(flushCtx); err != nil {
				log.Warn("Final stats publish failed", "error", err)
			}
			cancel()
			log.Info("Stats publisher stopping")
			return
		case <-ticker.C:
			if err := p.Publish(ctx); err != nil {
				log.Warn("Stats publish failed", "error", err)
			}
		}
	}
}

// Aggregate sums every live snapshot under prefix
func Aggregate(ctx context.Context, client *redis.Client, prefix string) (models.Statistics, error) {
	out := models.Statistics{GradeDistribution: make(map[models.Grade]int64)}
	for _, g := range models.Grades() {
		out.GradeDistribution[g] = 0
	}
	seen := make(map[models.Category]struct{})
	modelTypes := make(map[string]struct{})

	pattern := prefix + ":*"
	var cursor uint64
	for {
		keys, cur, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return models.Statistics{}, fmt.Errorf("scan %s: %w", pattern, err)
		}
		cursor = cur
		for _, k := range keys {
			fields, err := client.HGetAll(ctx, k).Result()
			if err != nil {
				return models.Statistics{}, fmt.Errorf("read %s: %w", k, err)
			}
			mergeSnapshot(&out, fields, seen, modelTypes)
		}
		if cursor == 0 {
			break
		}
	}

	out.CategoriesSeen = orderCategories(seen)
	switch len(modelTypes) {
	case 0:
	case 1:
		for mt := range modelTypes {
			out.ModelType = mt
		}
	default:
		out.ModelType = ModelTypeMixed
	}
	return out, nil
}

func mergeSnapshot(out *models.Statistics, fields map[string]string, seen map[models.Category]struct{}, modelTypes map[string]struct{}) {
	for name, raw := range fields {
		switch {
		case name == fieldTotal:
			n, _ := strconv.ParseInt(raw, 10, 64)
			out.TotalPredictions += n
		case strings.HasPrefix(name, fieldGradePfx):
			g, err := models.ParseGrade(strings.TrimPrefix(name, fieldGradePfx))
			if err != nil {
				continue
			}
			n, _ := strconv.ParseInt(raw, 10, 64)
			out.GradeDistribution[g] += n
		case name == fieldCategories:
			for _, c := range strings.Split(raw, ",") {
				if c != "" {
					seen[models.Category(c)] = struct{}{}
				}
			}
		case name == fieldModelType:
			if raw != "" {
				modelTypes[raw] = struct{}{}
			}
		case name == fieldUpdated:
			if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil && ts.After(out.LastUpdated) {
				out.LastUpdated = ts
			}
		}
	}
}

func joinCategories(cs []models.Category) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}
