package cache

import (
	"context"
)

// ResultCache is a region-scoped get/put cache for computed query
// results. Keys are derived by the caller and must be unique within a
// region. Implementations must be safe for concurrent use; concurrent
// misses on the same key may both compute, which is acceptable since
// all cached operations are pure.
type ResultCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, region, key string) ([]byte, bool, error)
	// Set stores a value under region+key. Lifetime is governed by the
	// provider's configured TTL.
	Set(ctx context.Context, region, key string, value []byte) error
}
