package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nfl-pickem-go/models"
)

// DefaultLeaderboardTTL bounds how stale a cached leaderboard can get when an
// invalidation is missed
const DefaultLeaderboardTTL = 10 * time.Minute

// RedisCache stores computed leaderboards
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient wraps an existing client
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Ping verifies the Redis connection
func (rc *RedisCache) Ping(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// LeaderboardKey is the cache key for a season's standings
func LeaderboardKey(season int) string {
	return fmt.Sprintf("leaderboard:%d", season)
}

// GetLeaderboard returns the cached standings. A miss is nil, false, nil.
func (rc *RedisCache) GetLeaderboard(ctx context.Context, season int) ([]models.PlayerStanding, bool, error) {
	data, err := rc.client.Get(ctx, LeaderboardKey(season)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	standings, err := DecodeStandings(data)
	if err != nil {
		return nil, false, err
	}
	return standings, true, nil
}

// SetLeaderboard caches standings for the configured TTL
func (rc *RedisCache) SetLeaderboard(ctx context.Context, season int, standings []models.PlayerStanding) error {
	data, err := EncodeStandings(standings)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, LeaderboardKey(season), data, rc.ttl).Err()
}

// InvalidateLeaderboard drops the cached standings for a season
func (rc *RedisCache) InvalidateLeaderboard(ctx context.Context, season int) error {
	return rc.client.Del(ctx, LeaderboardKey(season)).Err()
}

// EncodeStandings serializes standings for storage
func EncodeStandings(standings []models.PlayerStanding) ([]byte, error) {
	if standings == nil {
		standings = []models.PlayerStanding{}
	}
	data, err := json.Marshal(standings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	return data, nil
}

// DecodeStandings parses stored standings
func DecodeStandings(data []byte) ([]models.PlayerStanding, error) {
	var standings []models.PlayerStanding
	if err := json.Unmarshal(data, &standings); err != nil {
		return nil, fmt.Errorf("failed to decode cached leaderboard: %w", err)
	}
	if standings == nil {
		standings = []models.PlayerStanding{}
	}
	return standings, nil
}
