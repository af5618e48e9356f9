package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/prateleira/backend/config"
	httpDelivery "github.com/prateleira/backend/internal/delivery/http"
	"github.com/prateleira/backend/internal/domain"
	"github.com/prateleira/backend/internal/infrastructure/cache"
	"github.com/prateleira/backend/internal/infrastructure/logger"
	"github.com/prateleira/backend/internal/usecase"
)

const redisPingTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Environment, cfg.Grouping.EnableDebugLogging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting prateleira backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Int("rate_limit_per_ip", cfg.RateLimit.PerIP),
	)

	// Initialize infrastructure dependencies
	keyCache, closeCache, err := buildCache(cfg.Cache)
	if err != nil {
		log.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer closeCache()

	// Initialize usecase layer
	groupingService := usecase.NewGroupingService(
		keyCache,
		log,
		usecase.GroupingServiceConfig{
			KeyCacheTTL: cfg.Cache.TTL,
		},
	)

	limiter := httpDelivery.NewIPRateLimiter(cfg.RateLimit.PerIP)
	defer limiter.Stop()

	handler := httpDelivery.NewHandler(groupingService)
	router := httpDelivery.SetupRouter(cfg, handler, limiter, log)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// buildCache returns the cache selected by cfg.Type and a function releasing it.
// The "none" type yields a nil repository.
func buildCache(cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "memory":
		memoryCache := cache.NewMemoryCache()
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, nil, err
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
