package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/digitallife/lessonhub/internal/domain/providers"
)

// memoryCache is a minimal in-process CacheProvider for middleware tests
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *memoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok, nil
}

func countingHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lessons":[]}`))
	})
}

func TestCacheMiddleware_ListingHitOnSecondRequest(t *testing.T) {
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(newMemoryCache()).Middleware(countingHandler(&hits)))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/lessons?category=grief", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/lessons?category=grief", nil))

	assert.Equal(t, 1, hits)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestCacheMiddleware_TiersDoNotShareEntries(t *testing.T) {
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(newMemoryCache()).Middleware(countingHandler(&hits)))

	free := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	handler.ServeHTTP(httptest.NewRecorder(), free)

	premium := httptest.NewRequest(http.MethodGet, "/lessons", nil)
	premium.Header.Set(HeaderUserEmail, "p@example.com")
	premium.Header.Set(HeaderUserPremium, "true")
	handler.ServeHTTP(httptest.NewRecorder(), premium)

	// A premium listing differs from a free one; the free entry must not serve it
	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_DetailNeverCached(t *testing.T) {
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(newMemoryCache()).Middleware(countingHandler(&hits)))

	// Each detail fetch counts a view, so both requests must reach the handler
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons/abc", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons/abc", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_CommentsCached(t *testing.T) {
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(newMemoryCache()).Middleware(countingHandler(&hits)))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons/abc/comments", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons/abc/comments", nil))

	assert.Equal(t, 1, hits)
}

func TestCacheMiddleware_MutationsBypassCache(t *testing.T) {
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(newMemoryCache()).Middleware(countingHandler(&hits)))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/lessons/abc/like", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/lessons/abc/like", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_InvalidationDropsListingEntries(t *testing.T) {
	cache := newMemoryCache()
	var hits int
	handler := IdentityMiddleware(NewCacheMiddleware(cache).Middleware(countingHandler(&hits)))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons", nil))
	assert.NoError(t, cache.DeleteByPrefix(context.Background(), providers.ResponseCachePrefix("/lessons")))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_NilCachePassesThrough(t *testing.T) {
	var hits int
	handler := NewCacheMiddleware(nil).Middleware(countingHandler(&hits))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/lessons", nil))

	assert.Equal(t, 1, hits)
}
