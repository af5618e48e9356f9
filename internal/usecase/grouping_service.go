package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/prateleira/backend/internal/domain"
)

// keyCachePrefix namespaces canonical keys in a shared cache.
// Bump the version whenever CanonicalKey changes its output.
const keyCachePrefix = "canonical:v1:"

// GroupingServiceConfig holds configuration for the grouping service
type GroupingServiceConfig struct {
	KeyCacheTTL time.Duration
}

// GroupingService groups product listings, memoizing title keys in an
// optional shared cache so repeated titles across requests are keyed once.
type GroupingService struct {
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewGroupingService creates a new grouping service. cache and logger may be nil.
func NewGroupingService(
	cache domain.CacheRepository,
	logger *zap.Logger,
	config GroupingServiceConfig,
) *GroupingService {
	cacheTTL := config.KeyCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &GroupingService{
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("grouping"),
	}
}

// keyStats counts how keys were resolved during one call
type keyStats struct {
	hits   int
	misses int
}

// GroupProducts groups products by canonical key. The result is identical
// to GroupProducts(products); the cache only saves recomputation.
func (s *GroupingService) GroupProducts(ctx context.Context, products []domain.Product) []domain.ProductGroup {
	var stats keyStats
	local := make(map[string]string)

	groups := GroupProductsBy(products, func(title string) string {
		if key, ok := local[title]; ok {
			return key
		}
		key := s.resolveKey(ctx, title, &stats)
		local[title] = key
		return key
	})

	s.logger.Debug("grouped products",
		zap.Int("products", len(products)),
		zap.Int("groups", len(groups)),
		zap.Int("distinctTitles", len(local)),
		zap.Int("cacheHits", stats.hits),
		zap.Int("cacheMisses", stats.misses),
	)

	return groups
}

// CanonicalKey returns the canonical key of a single title
func (s *GroupingService) CanonicalKey(ctx context.Context, title string) string {
	var stats keyStats
	return s.resolveKey(ctx, title, &stats)
}

// resolveKey looks the title up in the shared cache, computing and storing
// the key on a miss. Cache failures are logged and otherwise ignored.
func (s *GroupingService) resolveKey(ctx context.Context, title string, stats *keyStats) string {
	if s.cache == nil {
		return CanonicalKey(title)
	}

	cacheKey := keyCachePrefix + title

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		stats.hits++
		return cached
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("key cache lookup failed", zap.String("title", title), zap.Error(err))
	}

	stats.misses++
	key := CanonicalKey(title)

	if err := s.cache.Set(ctx, cacheKey, key, s.cacheTTL); err != nil {
		s.logger.Warn("key cache store failed", zap.String("title", title), zap.Error(err))
	}

	return key
}
