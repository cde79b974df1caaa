package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"starmap-route-service/internal/domain"
)

// Redis-backed cache of resolved routes, keyed by token text. Tokens
// are content-addressed (the token is the route), so entries never go
// stale; the TTL only bounds memory use.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (c *RedisRouteCache) GetRoute(ctx context.Context, token string) ([]domain.ResolvedWaypoint, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}
	if token == "" {
		return nil, false, errors.New("route cache: token must not be empty")
	}

	val, err := c.Client.Get(ctx, routeKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache: get: %w", err)
	}

	var route []domain.ResolvedWaypoint
	if err := json.Unmarshal([]byte(val), &route); err != nil {
		return nil, false, fmt.Errorf("route cache: decode cached route: %w", err)
	}

	return route, true, nil
}

func (c *RedisRouteCache) PutRoute(ctx context.Context, token string, route []domain.ResolvedWaypoint) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}
	if token == "" {
		return errors.New("route cache: token must not be empty")
	}

	b, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("route cache: encode route: %w", err)
	}
	if err := c.Client.Set(ctx, routeKey(token), b, c.TTL).Err(); err != nil {
		return fmt.Errorf("route cache: set: %w", err)
	}

	return nil
}

func routeKey(token string) string { return "route:" + token }
