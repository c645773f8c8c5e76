package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
)

// Limiter decides whether key may make one more write request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket living in this process.
type MemoryLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

// NewMemoryLimiter allows perMin requests per minute per key, with bursts of up to perMin.
func NewMemoryLimiter(perMin int) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(perMin) / 60),
		burst:    perMin,
		now:      time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(m.rate, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.lim.AllowN(now, 1), nil
}

// Sweep forgets keys idle for longer than idle and returns how many were dropped.
func (m *MemoryLimiter) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-idle)
	n := 0
	for k, v := range m.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(m.visitors, k)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *MemoryLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sweep(interval)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RedisLimiter is a fixed one-minute window shared by every replica.
type RedisLimiter struct {
	rdb    redis.Cmdable
	perMin int
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(rdb redis.Cmdable, perMin int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, perMin: perMin, prefix: "thoughts:ratelimit:", now: time.Now}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := r.now().UTC().Truncate(time.Minute).Unix()
	k := fmt.Sprintf("%s%s:%d", r.prefix, key, window)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(r.perMin), nil
}
