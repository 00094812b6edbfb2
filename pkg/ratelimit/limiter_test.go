package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SlidingWindow(t *testing.T) {
	clock := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory(2, time.Minute)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := m.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := m.Allow(ctx, "10.0.0.1")
	assert.False(t, ok, "third request inside the window")

	ok, _ = m.Allow(ctx, "10.0.0.2")
	assert.True(t, ok, "keys are counted separately")

	clock = clock.Add(61 * time.Second)
	ok, _ = m.Allow(ctx, "10.0.0.1")
	assert.True(t, ok, "window elapsed")
}

func newRedisLimiter(t *testing.T, limit int) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "ratelimit:auth:", limit, time.Minute), srv
}

func TestRedis_FixedWindow(t *testing.T) {
	limiter, srv := newRedisLimiter(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, srv.Exists("ratelimit:auth:10.0.0.1"))
	assert.Equal(t, time.Minute, srv.TTL("ratelimit:auth:10.0.0.1"))

	srv.FastForward(time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedis_ServerDown(t *testing.T) {
	limiter, srv := newRedisLimiter(t, 2)
	srv.Close()

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), srv.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = ConnectRedis(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func TestMemory_EvictsIdleKeys(t *testing.T) {
	clock := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory(5, time.Minute)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		_, err := m.Allow(ctx, fmt.Sprintf("10.0.%d.%d", i/256, i%256))
		require.NoError(t, err)
	}
	assert.Equal(t, 10000, m.Len())

	clock = clock.Add(2 * time.Minute)
	ok, err := m.Allow(ctx, "192.168.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestRedis_RepairsKeyWithoutTTL(t *testing.T) {
	limiter, srv := newRedisLimiter(t, 2)
	ctx := context.Background()

	require.NoError(t, srv.Set("ratelimit:auth:1.2.3.4", "7"))
	assert.Zero(t, srv.TTL("ratelimit:auth:1.2.3.4"))

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, srv.TTL("ratelimit:auth:1.2.3.4"))

	srv.FastForward(24 * time.Hour)
	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}
