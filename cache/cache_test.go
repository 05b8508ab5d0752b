package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Names []string `json:"names"`
}

func TestHomeCache_RoundTripAndInvalidate(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewHomeCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()

	var got payload
	hit, err := c.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, payload{Names: []string{"Sushi Zen"}}))
	assert.True(t, mr.Exists(HomeKey))
	assert.Equal(t, time.Minute, mr.TTL(HomeKey))

	hit, err = c.Get(ctx, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Sushi Zen"}, got.Names)

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(HomeKey))
}

func TestHomeCache_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewHomeCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, payload{}))
	mr.FastForward(2 * time.Second)

	hit, err := c.Get(ctx, &payload{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestHomeCache_Disabled(t *testing.T) {
	c := NewHomeCache(nil, time.Minute)
	ctx := context.Background()

	hit, err := c.Get(ctx, &payload{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(ctx, payload{}))
	assert.NoError(t, c.Invalidate(ctx))
}
