package http

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestMemoryLimiter_RefillsOverTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryLimiter(60) // one per second, bursts of 60
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		ok, err := m.Allow(ctx, "1.2.3.4")
		assert.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, _ := m.Allow(ctx, "1.2.3.4")
	assert.False(t, ok, "burst should be spent")

	ok, _ = m.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Second)
	ok, _ = m.Allow(ctx, "1.2.3.4")
	assert.True(t, ok, "one token back after a second")
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryLimiter(10)
	m.now = func() time.Time { return now }

	_, _ = m.Allow(context.Background(), "old")
	now = now.Add(10 * time.Minute)
	_, _ = m.Allow(context.Background(), "fresh")

	assert.Equal(t, 1, m.Sweep(5*time.Minute))
	assert.Len(t, m.visitors, 1)
	assert.Contains(t, m.visitors, "fresh")
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("needs docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	rc, err := tcredis.Run(ctx, "redis:7")
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	uri, err := rc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis uri: %v", err)
	}
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)
	rl := NewRedisLimiter(rdb, 3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok, "window is spent")

	ok, _ = rl.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	key := fmt.Sprintf("thoughts:ratelimit:1.2.3.4:%d", now.Truncate(time.Minute).Unix())
	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, 2*time.Minute)

	// later in the same minute still counts against the window
	now = now.Add(40 * time.Second)
	ok, _ = rl.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	now = now.Add(20 * time.Second)
	ok, err = rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "next minute starts a fresh window")
}

func TestRedisLimiter_ErrorWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	ok, err := NewRedisLimiter(rdb, 3).Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, ok)
}
