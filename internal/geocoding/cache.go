package geocoding

import (
	"sync"

	"github.com/fieldscout/meridian/internal/models"
)

// lruCache is a thread-safe LRU cache for geocode results. Entries never
// expire on their own; the least-recently-used entry is evicted once the
// cache is full.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	key   string
	value models.GeocodeResult
	prev  *cacheEntry
	next  *cacheEntry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func (c *lruCache) get(key string) (models.GeocodeResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.GeocodeResult{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value models.GeocodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *cacheEntry) {
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

func (c *lruCache) remove(e *cacheEntry) {
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

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
