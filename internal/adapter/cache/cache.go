// Package cache provides in-memory LRU decorators for the live environmental
// data sources. Only usable (positive) values are cached so that failed or
// empty upstream answers are retried on the next request.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
)

// Recorder observes cache hits and misses. *observability.Metrics implements it.
type Recorder interface {
	RecordCache(lookup string, hit bool)
}

// CachedIrradiance wraps an IrradianceSource with an LRU cache keyed by
// rounded coordinates.
type CachedIrradiance struct {
	inner    domain.IrradianceSource
	cache    *lruCache[float64]
	recorder Recorder
}

// NewCachedIrradiance creates a cache decorator around an irradiance source.
// recorder may be nil.
func NewCachedIrradiance(inner domain.IrradianceSource, maxEntries int, recorder Recorder) *CachedIrradiance {
	return &CachedIrradiance{
		inner:    inner,
		cache:    newLRUCache[float64](maxEntries),
		recorder: recorder,
	}
}

func (c *CachedIrradiance) SunHours(ctx context.Context, lat, lon float64) (float64, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if v, ok := c.cache.get(key); ok {
		c.record(true)
		return v, nil
	}
	c.record(false)

	v, err := c.inner.SunHours(ctx, lat, lon)
	if err != nil {
		return v, err
	}
	if v > 0 {
		c.cache.put(key, v)
	}
	return v, nil
}

func (c *CachedIrradiance) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCache(domain.LookupIrradiance, hit)
	}
}

// CachedPrice wraps a PriceSource with an LRU cache keyed by state code.
type CachedPrice struct {
	inner    domain.PriceSource
	cache    *lruCache[float64]
	recorder Recorder
}

// NewCachedPrice creates a cache decorator around a price source.
// recorder may be nil.
func NewCachedPrice(inner domain.PriceSource, maxEntries int, recorder Recorder) *CachedPrice {
	return &CachedPrice{
		inner:    inner,
		cache:    newLRUCache[float64](maxEntries),
		recorder: recorder,
	}
}

func (c *CachedPrice) ResidentialPrice(ctx context.Context, state string) (float64, error) {
	key := strings.ToUpper(state)
	if v, ok := c.cache.get(key); ok {
		c.record(true)
		return v, nil
	}
	c.record(false)

	v, err := c.inner.ResidentialPrice(ctx, state)
	if err != nil {
		return v, err
	}
	if v > 0 {
		c.cache.put(key, v)
	}
	return v, nil
}

func (c *CachedPrice) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCache(domain.LookupPrice, hit)
	}
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
