package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"movielinks/internal/testutil"
)

func TestNewMemoryCache(t *testing.T) {
	t.Run("creates cache with specified capacity", func(t *testing.T) {
		cache := NewMemoryCache[string](50, time.Minute)
		testutil.AssertEqual(t, cache.Capacity(), 50, "capacity should match")
		testutil.AssertEqual(t, cache.TTL(), time.Minute, "ttl should match")
		testutil.AssertEqual(t, cache.Size(), 0, "new cache should be empty")
	})

	t.Run("uses defaults for invalid values", func(t *testing.T) {
		cache := NewMemoryCache[string](-10, -time.Second)
		testutil.AssertEqual(t, cache.Capacity(), DefaultCapacity, "should use default capacity")
		testutil.AssertEqual(t, cache.TTL(), time.Duration(0), "negative ttl disables expiry")
	})
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Run("stores and retrieves value", func(t *testing.T) {
		cache := NewMemoryCache[string](10, 0)
		cache.Set("heat", "value1")

		value, found := cache.Get("heat")
		testutil.AssertTrue(t, found, "should find stored value")
		testutil.AssertEqual(t, value, "value1", "value should match")
	})

	t.Run("returns zero value for missing key", func(t *testing.T) {
		cache := NewMemoryCache[*int](10, 0)
		value, found := cache.Get("missing")

		testutil.AssertFalse(t, found, "should not find missing key")
		testutil.AssertTrue(t, value == nil, "value should be nil")
	})

	t.Run("updates existing key", func(t *testing.T) {
		cache := NewMemoryCache[string](10, 0)
		cache.Set("heat", "value1")
		cache.Set("heat", "value2")

		value, _ := cache.Get("heat")
		testutil.AssertEqual(t, value, "value2", "should have updated value")
		testutil.AssertEqual(t, cache.Size(), 1, "size should still be 1")
	})
}

func TestMemoryCache_TTL(t *testing.T) {
	t.Run("expires item after default TTL", func(t *testing.T) {
		cache := NewMemoryCache[string](10, 80*time.Millisecond)
		cache.Set("heat", "value1")

		_, found := cache.Get("heat")
		testutil.AssertTrue(t, found, "should find key before expiration")

		time.Sleep(120 * time.Millisecond)

		_, found = cache.Get("heat")
		testutil.AssertFalse(t, found, "should not find expired key")
		testutil.AssertEqual(t, cache.Size(), 0, "expired entry dropped on read")
	})

	t.Run("explicit TTL overrides default", func(t *testing.T) {
		cache := NewMemoryCache[string](10, 50*time.Millisecond)
		cache.SetWithTTL("heat", "value1", 0)

		time.Sleep(80 * time.Millisecond)

		_, found := cache.Get("heat")
		testutil.AssertTrue(t, found, "zero TTL never expires")
	})

	t.Run("set refreshes TTL", func(t *testing.T) {
		cache := NewMemoryCache[string](10, 100*time.Millisecond)
		cache.Set("heat", "value1")
		time.Sleep(60 * time.Millisecond)
		cache.Set("heat", "value2")
		time.Sleep(60 * time.Millisecond)

		value, found := cache.Get("heat")
		testutil.AssertTrue(t, found, "should find key with refreshed TTL")
		testutil.AssertEqual(t, value, "value2", "should have updated value")
	})
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	cache := NewMemoryCache[int](3, 0)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("c", 3)

	cache.Get("a") // a becomes most recent, b is now LRU
	cache.Set("d", 4)

	_, found := cache.Get("b")
	testutil.AssertFalse(t, found, "LRU entry evicted")
	_, found = cache.Get("a")
	testutil.AssertTrue(t, found, "recently used entry kept")
	testutil.AssertEqual(t, cache.Size(), 3, "size capped at capacity")
	testutil.AssertEqual(t, cache.Stats().Evictions, int64(1), "one eviction")
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	cache := NewMemoryCache[int](10, 0)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	cache.Delete("missing")
	testutil.AssertEqual(t, cache.Size(), 1, "one left after delete")

	cache.Get("b")
	cache.Clear()
	testutil.AssertEqual(t, cache.Size(), 0, "empty after clear")
	testutil.AssertEqual(t, cache.Stats().Hits, int64(0), "counters reset")
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := NewMemoryCache[int](10, 0)
	cache.Set("a", 1)

	cache.Get("a")
	cache.Get("a")
	cache.Get("b")

	stats := cache.Stats()
	testutil.AssertEqual(t, stats.Hits, int64(2), "hits")
	testutil.AssertEqual(t, stats.Misses, int64(1), "misses")
	testutil.AssertEqual(t, stats.Size, 1, "size")
	testutil.AssertEqual(t, stats.Capacity, 10, "capacity")
}

func TestMemoryCache_CleanExpiredAndKeys(t *testing.T) {
	cache := NewMemoryCache[int](10, 0)
	cache.SetWithTTL("short", 1, 30*time.Millisecond)
	cache.Set("long", 2)
	cache.Set("newest", 3)

	time.Sleep(60 * time.Millisecond)

	testutil.AssertEqual(t, len(cache.Keys()), 2, "expired key hidden")
	testutil.AssertEqual(t, cache.Keys()[0], "newest", "most recent first")
	testutil.AssertEqual(t, cache.CleanExpired(), 1, "one expired entry removed")
	testutil.AssertEqual(t, cache.Size(), 2, "live entries kept")
}

func TestMemoryCache_StartCleanupWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := NewMemoryCache[int](10, 20*time.Millisecond)
	cache.Set("a", 1)
	cache.StartCleanupWorker(ctx, 10*time.Millisecond)

	testutil.Eventually(t, time.Second, func() bool { return cache.Size() == 0 }, "worker should clean expired entry")
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache[int](50, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", (id*100+i)%80)
				cache.Set(key, i)
				cache.Get(key)
			}
		}(g)
	}
	wg.Wait()

	testutil.AssertTrue(t, cache.Size() <= 50, "capacity respected under concurrency")
}

func BenchmarkMemoryCache_Set(b *testing.B) {
	cache := NewMemoryCache[int](1000, time.Minute)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(fmt.Sprintf("k%d", i%1000), i)
	}
}

func BenchmarkMemoryCache_Get(b *testing.B) {
	cache := NewMemoryCache[int](1000, time.Minute)
	for i := 0; i < 1000; i++ {
		cache.Set(fmt.Sprintf("k%d", i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(fmt.Sprintf("k%d", i%1000))
	}
}
