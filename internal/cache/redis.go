package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/lastchanceair/config"
	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores ranked deal lists per catalog generation.
type RedisCache struct {
	client   *redis.Client
	dealsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		dealsTTL: time.Duration(cfg.DealsTTLSeconds) * time.Second,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetDeals returns nil, nil on a miss.
func (c *RedisCache) GetDeals(ctx context.Context, generation string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, dealsKey(generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetDeals(ctx context.Context, generation string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dealsKey(generation), payload, c.dealsTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// dealsKey scopes entries to one catalog generation, see catalog.Snapshot.Key.
func dealsKey(generation string) string {
	return "cache:deals:" + generation
}
