package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are plain strings; a missing or expired key yields ErrCacheMiss.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
