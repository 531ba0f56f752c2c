package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajasatyajit/EcoTide/internal/models"
)

func TestRecorderSnapshot(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := New(ModelTypeRules)
	r.SetClock(func() time.Time { return fixed })

	empty := r.Snapshot()
	assert.Zero(t, empty.TotalPredictions)
	assert.Len(t, empty.GradeDistribution, 5)
	assert.Empty(t, empty.CategoriesSeen)

	r.Record(models.GradeA)
	r.Record(models.GradeA)
	r.Record(models.GradeE)
	r.Record("bogus")
	r.ObserveCategory(models.CategoryGarden)
	r.ObserveCategory(models.CategoryElectronics)
	r.ObserveCategory(models.CategoryGarden)

	s := r.Snapshot()
	assert.Equal(t, int64(4), s.TotalPredictions)
	assert.Equal(t, int64(2), s.GradeDistribution[models.GradeA])
	assert.Equal(t, int64(1), s.GradeDistribution[models.GradeE])
	assert.Equal(t, int64(0), s.GradeDistribution[models.GradeC])
	assert.Equal(t, []models.Category{models.CategoryElectronics, models.CategoryGarden}, s.CategoriesSeen)
	assert.Equal(t, ModelTypeRules, s.ModelType)
	assert.Equal(t, fixed, s.LastUpdated)
}

func TestRecorderConcurrentUpdates(t *testing.T) {
	r := New(ModelTypeML)
	const workers, per = 8, 500

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				r.Record(models.Grades()[i%5])
				r.ObserveCategory(models.CategoryHome)
				if i%100 == 0 {
					r.Snapshot()
				}
			}
		}(w)
	}
	wg.Wait()

	s := r.Snapshot()
	assert.Equal(t, int64(workers*per), s.TotalPredictions)
	var sum int64
	for _, n := range s.GradeDistribution {
		sum += n
	}
	assert.Equal(t, s.TotalPredictions, sum)
	assert.Equal(t, []models.Category{models.CategoryHome}, s.CategoriesSeen)
}

func newRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestPublishAndAggregate(t *testing.T) {
	srv := newRedis(t)
	client, err := NewClient("redis://" + srv.Addr())
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	a := New(ModelTypeML)
	a.Record(models.GradeA)
	a.Record(models.GradeB)
	a.ObserveCategory(models.CategoryFood)

	b := New(ModelTypeML)
	b.Record(models.GradeB)
	b.ObserveCategory(models.CategoryElectronics)

	pa := NewPublisher(client, a, "ecotide:test", time.Second, time.Minute)
	pb := NewPublisher(client, b, "ecotide:test", time.Second, time.Minute)
	assert.NotEqual(t, pa.Key(), pb.Key())

	require.NoError(t, pa.Publish(ctx))
	require.NoError(t, pb.Publish(ctx))
	assert.Equal(t, time.Minute, srv.TTL(pa.Key()))

	agg, err := Aggregate(ctx, client, "ecotide:test")
	require.NoError(t, err)
	assert.Equal(t, int64(3), agg.TotalPredictions)
	assert.Equal(t, int64(1), agg.GradeDistribution[models.GradeA])
	assert.Equal(t, int64(2), agg.GradeDistribution[models.GradeB])
	assert.Equal(t, []models.Category{models.CategoryElectronics, models.CategoryFood}, agg.CategoriesSeen)
	assert.Equal(t, ModelTypeML, agg.ModelType)
	assert.False(t, agg.LastUpdated.IsZero())
}

func TestAggregateMixedAndExpired(t *testing.T) {
	srv := newRedis(t)
	client, err := NewClient("redis://" + srv.Addr())
	require.NoError(t, err)
	defer client.Close()
	ctx := context.Background()

	ml := New(ModelTypeML)
	rules := New(ModelTypeRules)
	require.NoError(t, NewPublisher(client, ml, "p", time.Second, time.Minute).Publish(ctx))
	require.NoError(t, NewPublisher(client, rules, "p", time.Second, time.Minute).Publish(ctx))

	agg, err := Aggregate(ctx, client, "p")
	require.NoError(t, err)
	assert.Equal(t, ModelTypeMixed, agg.ModelType)

	srv.FastForward(2 * time.Minute)
	agg, err = Aggregate(ctx, client, "p")
	require.NoError(t, err)
	assert.Zero(t, agg.TotalPredictions)
	assert.Empty(t, agg.ModelType)
}

func TestPublisherRunFlushesOnCancel(t *testing.T) {
	srv := newRedis(t)
	client, err := NewClient("redis://" + srv.Addr())
	require.NoError(t, err)
	defer client.Close()

	r := New(ModelTypeRules)
	r.Record(models.GradeC)
	p := NewPublisher(client, r, "run", 10*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	r.Record(models.GradeC)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not stop")
	}
	assert.Equal(t, "2", srv.HGet(p.Key(), fieldTotal))
}

func TestNewClientErrors(t *testing.T) {
	_, err := NewClient("not-a-url")
	assert.Error(t, err)
}
