package stats

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	MetricPredictions        = "predictions"
	MetricPredictionFallback = "prediction_fallbacks"
	MetricAnalyses           = "analyses"
	MetricAnalysisFallback   = "analysis_fallbacks"
)

type Store interface {
	IncrementDaily(ctx context.Context, day time.Time, metric string) error
	DailyCounts(ctx context.Context, day time.Time) (map[string]int64, error)
}

// Service keeps per-day usage counters. It doubles as the observer the
// prediction and analysis services report to; counter failures are logged
// and never reach the caller.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) ObservePrediction(ctx context.Context, fromFallback bool) {
	s.bump(ctx, MetricPredictions)
	if fromFallback {
		s.bump(ctx, MetricPredictionFallback)
	}
}

func (s *Service) ObserveAnalysis(ctx context.Context, fromFallback bool) {
	s.bump(ctx, MetricAnalyses)
	if fromFallback {
		s.bump(ctx, MetricAnalysisFallback)
	}
}

// DailySnapshot returns the counters for one UTC day. Metrics that were
// never bumped that day are present with a zero value.
func (s *Service) DailySnapshot(ctx context.Context, day time.Time) (map[string]int64, error) {
	if s.store == nil {
		return nil, fmt.Errorf("stats store is nil")
	}

	counts, err := s.store.DailyCounts(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("read daily counts: %w", err)
	}

	for _, metric := range allMetrics() {
		if _, ok := counts[metric]; !ok {
			counts[metric] = 0
		}
	}

	return counts, nil
}

func (s *Service) bump(ctx context.Context, metric string) {
	if s.store == nil {
		return
	}
	if err := s.store.IncrementDaily(ctx, s.now().UTC(), metric); err != nil {
		log.Printf("warning: increment %s counter failed: %v", metric, err)
	}
}

func allMetrics() []string {
	return []string{
		MetricPredictions,
		MetricPredictionFallback,
		MetricAnalyses,
		MetricAnalysisFallback,
	}
}
