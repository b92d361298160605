package geolib

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// cacheVersion is a schema version of cached records. Bumping it
// invalidates every entry made by previous versions of the library
// without an explicit cleanup.
const cacheVersion = "1"

func cacheKey(addr string) string {
	return addr + ":" + cacheVersion
}

// recordCache is a bounded LRU store for resolved records. Capacity is
// fixed for a lifetime of an instance, eviction is purely recency
// based, there is no expiration by time.
//
// Records are cloned on both sides of the boundary so a cached record
// is never aliased by a caller.
type recordCache struct {
	cache *lru.Cache
}

func (r *recordCache) get(addr string) (*Details, bool) {
	value, ok := r.cache.Get(cacheKey(addr))
	if !ok {
		return nil, false
	}

	return value.(*Details).Clone(), true
}

func (r *recordCache) put(addr string, details *Details) {
	r.cache.Add(cacheKey(addr), details.Clone())
}

func (r *recordCache) len() int {
	return r.cache.Len()
}

func newRecordCache(capacity int, logger Logger) (*recordCache, error) {
	if capacity <= 0 {
		return nil, newError(KindSetup,
			fmt.Sprintf("cache capacity must be positive, got %d", capacity),
			nil)
	}

	cache, err := lru.NewWithEvict(capacity, func(key, _ interface{}) {
		logger.CacheEvicted(key.(string))
	})
	if err != nil {
		return nil, newError(KindSetup, "cannot build a cache", err)
	}

	return &recordCache{cache: cache}, nil
}
