package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/lastchanceair/config"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379", DealsTTLSeconds: 45})
	assert.NotNil(t, c)
	assert.Equal(t, 45*time.Second, c.dealsTTL)
}

func TestDealsKey(t *testing.T) {
	assert.Equal(t, "cache:deals:5f0c:v3", dealsKey("5f0c:v3"))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1", DealsTTLSeconds: 1})
	_, err := c.GetDeals(ctx, "5f0c:v1")
	assert.Error(t, err)
}
