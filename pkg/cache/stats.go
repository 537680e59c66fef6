// Package cache keeps dashboard statistics in redis between writes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zoo_management/pkg/circuitbreaker"
	"zoo_management/pkg/queue"
	"zoo_management/pkg/store"
)

const (
	statsKey             = "zoo:dashboard:stats"
	invalidateRetryDelay = time.Second
	invalidateMaxRetries = 6
)

// StatsCache failures are never returned to callers: a broken cache only
// means the statistics are recomputed.
type StatsCache interface {
	Get(ctx context.Context) (store.DashboardStats, bool)
	Set(ctx context.Context, stats store.DashboardStats)
	Invalidate(ctx context.Context)
}

type NopStatsCache struct{}

func (NopStatsCache) Get(context.Context) (store.DashboardStats, bool) {
	return store.DashboardStats{}, false
}

func (NopStatsCache) Set(context.Context, store.DashboardStats) {}

func (NopStatsCache) Invalidate(context.Context) {}

// RedisStatsCache stores the statistics as JSON under a single key. Calls
// go through a circuit breaker so an unreachable redis is skipped quickly.
type RedisStatsCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	retries *queue.Queue
	log     *zap.Logger
}

// NewRedisStatsCache connects to redisURL (redis://[:password@]host:port/db)
// and checks the connection.
func NewRedisStatsCache(ctx context.Context, redisURL string, ttl time.Duration, breaker *circuitbreaker.CircuitBreaker, log *zap.Logger) (*RedisStatsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	opts.MaxRetries = 1

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStatsCacheWithClient(client, ttl, breaker, log), nil
}

func NewRedisStatsCacheWithClient(client *redis.Client, ttl time.Duration, breaker *circuitbreaker.CircuitBreaker, log *zap.Logger) *RedisStatsCache {
	return &RedisStatsCache{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		retries: queue.NewQueue(),
		log:     log.Named("stats_cache"),
	}
}

func (c *RedisStatsCache) Get(ctx context.Context) (store.DashboardStats, bool) {
	var stats store.DashboardStats
	hit := false
	err := c.breaker.Execute(func() error {
		data, err := c.client.Get(ctx, statsKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &stats); err != nil {
			c.log.Warn("Discarding unreadable cached stats", zap.Error(err))
			return nil
		}
		hit = true
		return nil
	}, nil)
	if err != nil {
		c.logFailure("get", err)
		return store.DashboardStats{}, false
	}
	return stats, hit
}

func (c *RedisStatsCache) Set(ctx context.Context, stats store.DashboardStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, statsKey, data, c.ttl).Err()
	}, nil)
	if err != nil {
		c.logFailure("set", err)
	}
}

// Invalidate deletes the cached statistics. A failed delete is queued for
// RunRetries.
func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	if err := c.del(ctx); err != nil {
		c.logFailure("invalidate", err)
		task := &queue.Task{ID: statsKey, MaxRetries: invalidateMaxRetries}
		c.retries.Backoff(task, invalidateRetryDelay)
		c.retries.Enqueue(task)
	}
}

// RunRetries retries queued invalidations every interval until ctx is done.
func (c *RedisStatsCache) RunRetries(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.retryDue(ctx)
		}
	}
}

func (c *RedisStatsCache) retryDue(ctx context.Context) {
	for task := c.retries.Dequeue(); task != nil; task = c.retries.Dequeue() {
		err := c.del(ctx)
		if err == nil {
			c.log.Info("Stale stats removed after retry", zap.Int("attempts", task.RetryCount))
			continue
		}
		if task.Exhausted() {
			c.log.Warn("Giving up on stats invalidation", zap.Int("attempts", task.RetryCount), zap.Error(err))
			continue
		}
		c.retries.Backoff(task, invalidateRetryDelay)
		c.retries.Enqueue(task)
	}
}

// PendingInvalidations returns the number of queued invalidation retries.
func (c *RedisStatsCache) PendingInvalidations() int {
	return c.retries.Size()
}

func (c *RedisStatsCache) del(ctx context.Context) error {
	return c.breaker.Execute(func() error {
		return c.client.Del(ctx, statsKey).Err()
	}, nil)
}

func (c *RedisStatsCache) Close() error {
	return c.client.Close()
}

func (c *RedisStatsCache) logFailure(op string, err error) {
	if errors.Is(err, circuitbreaker.ErrOpen) {
		c.log.Debug("Stats cache skipped", zap.String("op", op))
		return
	}
	c.log.Warn("Stats cache unavailable",
		zap.String("op", op),
		zap.String("breaker", c.breaker.GetState().String()),
		zap.Error(err),
	)
}
