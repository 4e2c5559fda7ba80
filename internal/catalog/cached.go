package catalog

import (
	"context"
	"time"

	"github.com/flipcart-next/internal/cache"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"

	"golang.org/x/sync/singleflight"
)

const cacheKey = "catalog:all"

// CachedSource 在 Redis 中缓存目录，并合并并发加载
type CachedSource struct {
	source Source
	ttl    time.Duration
	group  singleflight.Group
}

// NewCachedSource 包装目录来源，ttl<=0 时仅做并发合并
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, ttl: ttl}
}

// Load 优先读缓存，未命中时回源
func (s *CachedSource) Load(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		if s.ttl > 0 {
			var cached []models.Product
			hit, err := cache.GetJSON(ctx, cacheKey, &cached)
			if err != nil {
				logger.Warnw("catalog_cache_get_failed", "error", err)
			} else if hit {
				return cached, nil
			}
		}

		products, err := s.source.Load(ctx)
		if err != nil {
			return nil, err
		}
		if s.ttl > 0 {
			if err := cache.SetJSON(ctx, cacheKey, products, s.ttl); err != nil {
				logger.Warnw("catalog_cache_set_failed", "error", err)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}

// Invalidate 清除目录缓存
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return cache.Del(ctx, cacheKey)
}
