package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	sharesvc "github.com/ivankudzin/soulmate/backend/internal/services/share"
)

const sharePrefix = "share:"

// ShareRepo stores rendered result payloads under short-lived share ids.
// Cards expire on their own; nothing here outlives the TTL.
type ShareRepo struct {
	client *goredis.Client
}

func NewShareRepo(client *goredis.Client) *ShareRepo {
	return &ShareRepo{client: client}
}

func (r *ShareRepo) Save(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if id == "" || len(payload) == 0 || ttl <= 0 {
		return fmt.Errorf("invalid share payload")
	}

	if err := r.client.Set(ctx, sharePrefix+id, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save share card: %w", err)
	}
	return nil
}

func (r *ShareRepo) Get(ctx context.Context, id string) ([]byte, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if id == "" {
		return nil, fmt.Errorf("share id is required")
	}

	payload, err := r.client.Get(ctx, sharePrefix+id).Bytes()
	if err == goredis.Nil {
		return nil, sharesvc.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get share card: %w", err)
	}
	return payload, nil
}
