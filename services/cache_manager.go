package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"canteen-backend/models"
	"canteen-backend/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListCachePrefix = "products:list:"
	defaultCacheTTL        = 5 * time.Minute
)

type cachedProductList struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// CacheManager handles Redis caching for the product catalog. The catalog is
// immutable after seeding, so entries only need a TTL, no invalidation hook.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   defaultCacheTTL,
	}
}

func listCacheKey(params repository.ListProductsParams) string {
	return fmt.Sprintf("%ss=%s&c=%s&l=%d&o=%d",
		productListCachePrefix, params.Search, params.Category, params.Limit, params.Offset)
}

// GetProductList retrieves a cached product listing.
func (cm *CacheManager) GetProductList(ctx context.Context, params repository.ListProductsParams) ([]models.Product, int64, bool) {
	data, err := cm.redis.Get(ctx, listCacheKey(params)).Result()
	if err != nil {
		return nil, 0, false
	}

	var cached cachedProductList
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, 0, false
	}
	return cached.Products, cached.Total, true
}

// SetProductListAsync caches a product listing asynchronously.
func (cm *CacheManager) SetProductListAsync(params repository.ListProductsParams, products []models.Product, total int64) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(cachedProductList{Products: products, Total: total})
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, listCacheKey(params), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}
