package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	statsPrefix = "stats:daily:"

	// Daily counters are operational, not analytical. A month of history is
	// plenty for the admin view.
	statsRetention = 30 * 24 * time.Hour
)

// StatsRepo keeps one hash per UTC day with per-metric counters.
type StatsRepo struct {
	client *goredis.Client
}

func NewStatsRepo(client *goredis.Client) *StatsRepo {
	return &StatsRepo{client: client}
}

func (r *StatsRepo) IncrementDaily(ctx context.Context, day time.Time, metric string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if metric == "" {
		return fmt.Errorf("metric name is required")
	}

	key := dayKey(day)
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, metric, 1)
	pipe.ExpireNX(ctx, key, statsRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("increment daily stat: %w", err)
	}
	return nil
}

func (r *StatsRepo) DailyCounts(ctx context.Context, day time.Time) (map[string]int64, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	fields, err := r.client.HGetAll(ctx, dayKey(day)).Result()
	if err != nil && err != goredis.Nil {
		return nil, fmt.Errorf("read daily stats: %w", err)
	}

	counts := make(map[string]int64, len(fields))
	for metric, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse daily stat %q: %w", metric, err)
		}
		counts[metric] = n
	}
	return counts, nil
}

func dayKey(day time.Time) string {
	return statsPrefix + day.UTC().Format("20060102")
}
