package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"confsite/internal/domain"
)

const (
	scheduleKey = "schedule:grid"
	scheduleTTL = 5 * time.Minute
)

// scheduleCache caches the assembled schedule grid in Redis. It fails safe:
// any Redis error behaves like a cache miss so a broken cache never breaks
// the schedule page.
type scheduleCache struct {
	client *redis.Client
}

// NewScheduleCache returns a ScheduleCache backed by Redis at addr.
// An empty addr returns nil, meaning caching is disabled.
func NewScheduleCache(addr, password string) domain.ScheduleCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &scheduleCache{client: client}
}

func (c *scheduleCache) Get(ctx context.Context) (*domain.ScheduleGrid, bool) {
	raw, err := c.client.Get(ctx, scheduleKey).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors are both just a miss
		return nil, false
	}
	var grid domain.ScheduleGrid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, false
	}
	return &grid, true
}

func (c *scheduleCache) Set(ctx context.Context, grid *domain.ScheduleGrid) {
	raw, err := json.Marshal(grid)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, scheduleKey, raw, scheduleTTL).Err()
}

func (c *scheduleCache) Invalidate(ctx context.Context) {
	_ = c.client.Del(ctx, scheduleKey).Err()
}
