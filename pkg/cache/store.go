package cache

import (
	"context"
	"sync/atomic"

	"zoo_management/pkg/resources"
	"zoo_management/pkg/store"
)

// CachedStore serves DashboardStats from a StatsCache and drops the cached
// value after every successful write. Stats computed while a write
// completed are returned but not cached. Across processes sharing one
// redis the same race is bounded by the cache TTL.
type CachedStore struct {
	store.Store
	cache StatsCache
	// writes counts completed writes; bumped before each invalidation.
	writes atomic.Uint64
}

func NewCachedStore(s store.Store, c StatsCache) *CachedStore {
	return &CachedStore{Store: s, cache: c}
}

func (s *CachedStore) DashboardStats(ctx context.Context) (store.DashboardStats, error) {
	if stats, ok := s.cache.Get(ctx); ok {
		return stats, nil
	}
	before := s.writes.Load()
	stats, err := s.Store.DashboardStats(ctx)
	if err != nil {
		return stats, err
	}
	if s.writes.Load() == before {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

func (s *CachedStore) Create(ctx context.Context, res *resources.Resource, row map[string]any) error {
	return s.invalidateAfter(ctx, s.Store.Create(ctx, res, row))
}

func (s *CachedStore) Update(ctx context.Context, res *resources.Resource, id string, row map[string]any) error {
	return s.invalidateAfter(ctx, s.Store.Update(ctx, res, id, row))
}

func (s *CachedStore) Delete(ctx context.Context, res *resources.Resource, id string) error {
	return s.invalidateAfter(ctx, s.Store.Delete(ctx, res, id))
}

func (s *CachedStore) RecordSale(ctx context.Context, sale store.Sale) error {
	return s.invalidateAfter(ctx, s.Store.RecordSale(ctx, sale))
}

func (s *CachedStore) invalidateAfter(ctx context.Context, err error) error {
	if err == nil {
		s.writes.Add(1)
		s.cache.Invalidate(ctx)
	}
	return err
}
