package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/logger"
)

// StatsCache caches room statistics in Redis. A nil *StatsCache is valid
// and disables caching, so callers never branch on configuration.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache connects to Redis using the given URL. Returns nil (cache
// disabled) when the URL is empty or the connection fails.
func NewStatsCache(ctx context.Context, url string, ttl time.Duration) *StatsCache {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Get().Warnf("Invalid REDIS_URL, statistics cache disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Get().Warnf("Redis unreachable, statistics cache disabled: %v", err)
		return nil
	}

	logger.Get().Info("Statistics cache connected to Redis")
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(hotelID *uint) string {
	if hotelID == nil {
		return "stats:rooms:all"
	}
	return fmt.Sprintf("stats:rooms:hotel:%d", *hotelID)
}

// Get returns the cached statistics for a scope, or nil on miss.
func (c *StatsCache) Get(ctx context.Context, hotelID *uint) *repository.RoomStatistics {
	if c == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, statsKey(hotelID)).Bytes()
	if err != nil {
		return nil
	}
	var stats repository.RoomStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

// Set stores statistics for a scope with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, hotelID *uint, stats *repository.RoomStatistics) {
	if c == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(hotelID), raw, c.ttl).Err(); err != nil {
		logger.Get().Debugf("Failed to cache statistics: %v", err)
	}
}

// Invalidate drops the cached statistics for a hotel and for the global
// scope. Called after every room mutation.
func (c *StatsCache) Invalidate(ctx context.Context, hotelID uint) {
	if c == nil {
		return
	}
	id := hotelID
	if err := c.client.Del(ctx, statsKey(nil), statsKey(&id)).Err(); err != nil {
		logger.Get().Debugf("Failed to invalidate statistics cache: %v", err)
	}
}
