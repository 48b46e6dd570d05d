package providers

import "comicbot/internal/structures"

// countingCache reports every catalog cache lookup as a hit or a miss. Writes pass straight through.
type countingCache struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c countingCache) Get(key string) ([]byte, bool) {
	body, found := c.CacheProviderInterface.Get(key)
	c.record(found)
	return body, found
}

func (c countingCache) record(found bool) {
	if found {
		c.metrics.IncCacheHits()
		return
	}
	c.metrics.IncCacheMisses()
}

func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	cache := NewCacheProvider(conf, logger)
	if _, disabled := cache.(*noopCache); disabled {
		// nothing is ever stored, every lookup would count as a miss
		return cache
	}
	return countingCache{CacheProviderInterface: cache, metrics: metrics}
}
