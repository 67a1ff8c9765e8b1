package cart

import (
	"context"
	"time"
)

// Store is the subset of the Redis client the cart service needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}
