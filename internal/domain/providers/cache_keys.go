package providers

import (
	"crypto/sha256"
	"encoding/hex"
)

// ResponseCacheKeyPrefix namespaces cached HTTP responses in Redis
const ResponseCacheKeyPrefix = "http:cache:"

// ResponseCacheKey builds the cache key for one HTTP response. The path
// stays in clear text so invalidation can delete by path prefix; the query
// string and viewer tier are hashed to bound key length. Viewers of
// different tiers see different listings, so the tier is part of the key.
func ResponseCacheKey(path, rawQuery, tier string) string {
	sum := sha256.Sum256([]byte(rawQuery + "|" + tier))
	return ResponseCacheKeyPrefix + path + ":" + hex.EncodeToString(sum[:8])
}

// ResponseCachePrefix returns the key prefix covering every cached
// response under the given path.
func ResponseCachePrefix(path string) string {
	return ResponseCacheKeyPrefix + path
}
