package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prateleira/backend/internal/domain"
)

var (
	_ domain.CacheRepository = (*MemoryCache)(nil)
	_ domain.CacheRepository = (*RedisCache)(nil)
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value string
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve key",
			key:   "canonical:v1:Arroz 1kg",
			value: "arroz 1kg",
			ttl:   1 * time.Minute,
		},
		{
			name:  "store empty key value",
			key:   "canonical:v1:",
			value: "",
			ttl:   1 * time.Minute,
		},
		{
			name:  "store with short TTL",
			key:   "expires-soon",
			value: "leite 1l",
			ttl:   1 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			// For short TTL test, wait for expiration
			if tt.ttl < 10*time.Millisecond {
				time.Sleep(10 * time.Millisecond)
				_, err := cache.Get(ctx, tt.key)
				if err != domain.ErrCacheMiss {
					t.Errorf("Expected cache miss after expiration, got error = %v", err)
				}
				return
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if err != domain.ErrCacheMiss {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrCacheMiss)
	}
}

func TestMemoryCache_PurgeExpired(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	_ = cache.Set(ctx, "live", "a", 1*time.Minute)
	_ = cache.Set(ctx, "dead", "b", 1*time.Millisecond)

	cache.purgeExpired(time.Now().Add(time.Second))

	if size := len(cache.data); size != 1 {
		t.Errorf("len(data) = %d, want 1 after purge", size)
	}
	if _, err := cache.Get(ctx, "live"); err != nil {
		t.Errorf("Get(live) error = %v", err)
	}
}

func TestMemoryCache_CloseTwice(t *testing.T) {
	cache := NewMemoryCache()

	if err := cache.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
