package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheCountingMetrics struct {
	mockMetrics
	hits   int
	misses int
}

func (m *cacheCountingMetrics) IncCacheHits()   { m.hits++ }
func (m *cacheCountingMetrics) IncCacheMisses() { m.misses++ }

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	metrics := &cacheCountingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{}, metrics)

	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Set("k", []byte("v"))
	_, ok = c.Get("k")
	assert.True(t, ok)

	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestInstrumentedCache_DisabledIsNotWrapped(t *testing.T) {
	metrics := &cacheCountingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Minute), &cacheTestLogger{}, metrics)

	assert.IsType(t, &noopCache{}, c)
	c.Get("k")
	assert.Equal(t, 0, metrics.misses)
}

func TestInstrumentedCache_SetDoesNotCount(t *testing.T) {
	metrics := &cacheCountingMetrics{}
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &cacheTestLogger{}, metrics)

	c.Set("k", []byte("v"))
	assert.Zero(t, metrics.hits+metrics.misses)
}
