package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pulsecheck/internal/model"
)

// StatsCache fronts the population aggregator with a short-lived Redis
// snapshot per survey version. The aggregator's contract is unchanged: the
// cache only avoids recomputing the same snapshot for every dashboard viewer.
type StatsCache interface {
	Get(ctx context.Context, surveyVersion string) (*model.PopulationStatistics, error)
	Set(ctx context.Context, surveyVersion string, statistics *model.PopulationStatistics) error
	Invalidate(ctx context.Context, surveyVersion string) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new population statistics cache
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *statsCache) key(surveyVersion string) string {
	return fmt.Sprintf("stats:%s", surveyVersion)
}

func (c *statsCache) Get(ctx context.Context, surveyVersion string) (*model.PopulationStatistics, error) {
	data, err := c.client.Get(ctx, c.key(surveyVersion)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var statistics model.PopulationStatistics
	if err := json.Unmarshal([]byte(data), &statistics); err != nil {
		return nil, err
	}
	return &statistics, nil
}

func (c *statsCache) Set(ctx context.Context, surveyVersion string, statistics *model.PopulationStatistics) error {
	data, err := json.Marshal(statistics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(surveyVersion), data, c.ttl).Err()
}

func (c *statsCache) Invalidate(ctx context.Context, surveyVersion string) error {
	return c.client.Del(ctx, c.key(surveyVersion)).Err()
}
