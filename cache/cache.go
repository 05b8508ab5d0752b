package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"nagoyameshi/config"
)

const HomeKey = "cache:home"

// NewClient returns nil when no redis address is configured; every HomeCache
// method treats a nil client as a permanent miss.
func NewClient(conf config.Configuration) *redis.Client {
	if conf.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
}

// HomeCache holds the rendered top page payload as JSON.
type HomeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewHomeCache(client *redis.Client, ttl time.Duration) *HomeCache {
	return &HomeCache{Client: client, TTL: ttl}
}

func (c *HomeCache) enabled() bool {
	return c != nil && c.Client != nil
}

// Get decodes the cached payload into v and reports whether there was one.
func (c *HomeCache) Get(ctx context.Context, v interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	data, err := c.Client.Get(ctx, HomeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *HomeCache) Set(ctx context.Context, v interface{}) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, HomeKey, data, c.TTL).Err()
}

// Invalidate drops the cached payload after a restaurant or category write.
func (c *HomeCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.Client.Del(ctx, HomeKey).Err()
}
