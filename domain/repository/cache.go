package repository

import (
	"context"
	"time"
)

// IMediaCache is an optional read-through cache for media and profile
// lookups. Implementations must be nil-receiver safe so callers can wire a
// missing cache without branching.
type IMediaCache interface {
	Get(ctx context.Context, key string) (map[string]interface{}, bool)
	Set(ctx context.Context, key string, value map[string]interface{}, ttl time.Duration)
}
