package cache

import (
	"context"
	"encoding/json"
	"time"

	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// MediaCache stores Graph API responses as JSON blobs in Redis. Both a nil
// receiver and a nil client degrade to cache misses, so callers never need to
// check whether Redis was wired.
type MediaCache struct {
	client *redis.Client
}

func NewMediaCache(client *redis.Client) repository.IMediaCache {
	return &MediaCache{client: client}
}

func (c *MediaCache) Get(ctx context.Context, key string) (map[string]interface{}, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().WithField("error", err).Warn("Cache read failed")
		}
		return nil, false
	}
	var value map[string]interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Cache entry is not valid JSON")
		return nil, false
	}
	return value, true
}

func (c *MediaCache) Set(ctx context.Context, key string, value map[string]interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Cache entry not encodable")
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Cache write failed")
	}
}
