package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/ivankudzin/soulmate/backend/internal/repo/redis"
)

func TestLimiterBlocksOnMinuteWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 2, 100)

	ctx := context.Background()
	ip := "203.0.113.7"

	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.AllowPrediction(ctx, ip)
		if err != nil {
			t.Fatalf("allow prediction #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowPrediction(ctx, ip)
	if err != nil {
		t.Fatalf("allow prediction #3: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on third request in minute window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}

	mr.FastForward(61 * time.Second)

	retryAfter, allowed, err = limiter.AllowPrediction(ctx, ip)
	if err != nil {
		t.Fatalf("allow prediction after minute window: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("unexpected result after fast forward: allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func TestLimiterBlocksOnDayWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 100, 3)

	ctx := context.Background()
	ip := "198.51.100.4"

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := limiter.AllowPrediction(ctx, ip)
		if err != nil {
			t.Fatalf("allow prediction #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowPrediction(ctx, ip)
	if err != nil {
		t.Fatalf("allow prediction #4: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on fourth request in day window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 1, 0)

	ctx := context.Background()

	if _, allowed, err := limiter.AllowPrediction(ctx, "203.0.113.1"); err != nil || !allowed {
		t.Fatalf("first client first request: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowPrediction(ctx, "203.0.113.1"); err != nil || allowed {
		t.Fatalf("first client second request: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowPrediction(ctx, "203.0.113.2"); err != nil || !allowed {
		t.Fatalf("second client should not be affected: allowed=%v err=%v", allowed, err)
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
