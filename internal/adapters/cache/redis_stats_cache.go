package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/venturehub/investment-service/internal/ports"
)

// RedisStatsCache keeps investor portfolio aggregates as JSON values with a
// short TTL; settlement invalidates the key so the dashboard never serves a
// stale total past one cache window.
type RedisStatsCache struct {
	client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func statsKey(investorID uuid.UUID) string {
	return "invest:stats:" + investorID.String()
}

func (s *RedisStatsCache) Get(ctx context.Context, investorID uuid.UUID) (*ports.InvestorStats, error) {
	raw, err := s.client.Get(ctx, statsKey(investorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var stats ports.InvestorStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		// A corrupt entry is treated as a miss; it will be rewritten.
		return nil, nil
	}
	return &stats, nil
}

func (s *RedisStatsCache) Put(ctx context.Context, investorID uuid.UUID, stats ports.InvestorStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsKey(investorID), raw, ttl).Err()
}

func (s *RedisStatsCache) Invalidate(ctx context.Context, investorID uuid.UUID) error {
	return s.client.Del(ctx, statsKey(investorID)).Err()
}
