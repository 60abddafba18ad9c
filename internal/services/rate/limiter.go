package rate

import (
	"context"
	"fmt"
	"time"
)

const (
	predictMinuteWindow = time.Minute
	predictDayWindow    = 24 * time.Hour
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter caps prediction requests per client IP over a minute and a day.
// A limit of zero disables that window.
type Limiter struct {
	store     WindowStore
	perMinute int
	perDay    int
}

func NewLimiter(store WindowStore, perMinute, perDay int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if perDay < 0 {
		perDay = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		perDay:    perDay,
	}
}

func (l *Limiter) AllowPrediction(ctx context.Context, clientIP string) (int64, bool, error) {
	if clientIP == "" {
		return 0, false, fmt.Errorf("client ip is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(clientIP), predictMinuteWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perDay > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, dayKey(clientIP), predictDayWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perDay) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

func minuteKey(clientIP string) string {
	return "rate:predict:min:" + clientIP
}

func dayKey(clientIP string) string {
	return "rate:predict:day:" + clientIP
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
