package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gutly/internal/models"

	"github.com/redis/go-redis/v9"
)

const insightsKeyPrefix = "insights:"

// InsightsCache keeps the last generated insight list per user. A nil
// *InsightsCache is valid and caches nothing.
type InsightsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightsCache connects to redisURL and verifies the connection.
func NewInsightsCache(ctx context.Context, redisURL string, ttl time.Duration) (*InsightsCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewInsightsCacheWithClient(client, ttl), nil
}

func NewInsightsCacheWithClient(client *redis.Client, ttl time.Duration) *InsightsCache {
	return &InsightsCache{client: client, ttl: ttl}
}

func (c *InsightsCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func insightsKey(userID string) string {
	return insightsKeyPrefix + userID
}

// Get returns the cached insights for userID and whether they were found.
func (c *InsightsCache) Get(ctx context.Context, userID string) ([]models.Insight, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, insightsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get insights from Redis: %w", err)
	}

	var insights []models.Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal insights: %w", err)
	}
	return insights, true, nil
}

func (c *InsightsCache) Store(ctx context.Context, userID string, insights []models.Insight) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("failed to marshal insights: %w", err)
	}
	if err := c.client.Set(ctx, insightsKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store insights in Redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached insights after the user's meal list changes.
func (c *InsightsCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, insightsKey(userID)).Err()
}

// Status reports pool statistics for the debug endpoint.
func (c *InsightsCache) Status(ctx context.Context) map[string]any {
	if c == nil {
		return map[string]any{"connected": false}
	}
	if err := c.client.Ping(ctx).Err(); err != nil {
		return map[string]any{"connected": false, "error": err.Error()}
	}
	stats := c.client.PoolStats()
	return map[string]any{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}
}
