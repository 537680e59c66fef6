package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zoo_management/pkg/cache"
	"zoo_management/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	v := viper.New()
	v.Set("app.port", "0")
	v.Set("database.path", filepath.Join(t.TempDir(), "zoo.db"))
	v.Set("database.connect_retries", 1)
	v.Set("database.seed", true)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.NewNop()) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.FileExists(t, cfg.Database.Path)
}

func TestNewStatsCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"not configured", ""},
		{"unreachable", "redis://127.0.0.1:1/0"},
		{"invalid url", "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStatsCache(ctx, config.CacheConfig{
				RedisURL:       tt.url,
				StatsTTL:       time.Second,
				BreakerFails:   1,
				BreakerTimeout: time.Second,
			}, zap.NewNop())
			assert.IsType(t, cache.NopStatsCache{}, c)
		})
	}
}
