package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/ivankudzin/soulmate/backend/internal/repo/redis"
)

func newStatsService(t *testing.T) *Service {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewService(redrepo.NewStatsRepo(client))
}

func TestObserversBumpDailyCounters(t *testing.T) {
	svc := newStatsService(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	svc.ObservePrediction(ctx, false)
	svc.ObservePrediction(ctx, true)
	svc.ObserveAnalysis(ctx, true)

	counts, err := svc.DailySnapshot(ctx, day)
	if err != nil {
		t.Fatalf("DailySnapshot: %v", err)
	}

	want := map[string]int64{
		MetricPredictions:        2,
		MetricPredictionFallback: 1,
		MetricAnalyses:           1,
		MetricAnalysisFallback:   1,
	}
	for metric, n := range want {
		if counts[metric] != n {
			t.Fatalf("%s = %d, want %d", metric, counts[metric], n)
		}
	}
}

func TestDailySnapshotZeroFillsMetrics(t *testing.T) {
	svc := newStatsService(t)

	counts, err := svc.DailySnapshot(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("DailySnapshot: %v", err)
	}

	for _, metric := range allMetrics() {
		n, ok := counts[metric]
		if !ok {
			t.Fatalf("missing metric %s", metric)
		}
		if n != 0 {
			t.Fatalf("%s = %d, want 0", metric, n)
		}
	}
}

func TestCountersAreScopedToDay(t *testing.T) {
	svc := newStatsService(t)
	ctx := context.Background()

	day1 := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)

	svc.now = func() time.Time { return day1 }
	svc.ObservePrediction(ctx, false)

	svc.now = func() time.Time { return day2 }
	svc.ObservePrediction(ctx, false)
	svc.ObservePrediction(ctx, false)

	counts1, err := svc.DailySnapshot(ctx, day1)
	if err != nil {
		t.Fatalf("DailySnapshot day1: %v", err)
	}
	counts2, err := svc.DailySnapshot(ctx, day2)
	if err != nil {
		t.Fatalf("DailySnapshot day2: %v", err)
	}

	if counts1[MetricPredictions] != 1 {
		t.Fatalf("day1 predictions = %d, want 1", counts1[MetricPredictions])
	}
	if counts2[MetricPredictions] != 2 {
		t.Fatalf("day2 predictions = %d, want 2", counts2[MetricPredictions])
	}
}

func TestObserversTolerateMissingStore(t *testing.T) {
	svc := NewService(nil)

	// Must not panic; counters are best effort.
	svc.ObservePrediction(context.Background(), true)
	svc.ObserveAnalysis(context.Background(), false)

	if _, err := svc.DailySnapshot(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error for nil store")
	}
}
