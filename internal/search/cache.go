package search

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// MinCacheSize is the smallest number of query states kept
const MinCacheSize = 16

// Cache is an LRU of query states keyed by query key.
// Evicting or removing a pending state cancels its request.
type Cache struct {
	lru  *lru.Cache[string, *QueryState]
	size int
}

// NewCache creates a cache holding at least MinCacheSize states
func NewCache(size int) *Cache {
	if size < MinCacheSize {
		size = MinCacheSize
	}
	l, err := lru.NewWithEvict(size, func(_ string, st *QueryState) {
		st.release()
	})
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{lru: l, size: size}
}

// Get returns the state for key and marks it recently used
func (c *Cache) Get(key string) (*QueryState, bool) {
	return c.lru.Get(key)
}

// Peek returns the state for key without touching recency
func (c *Cache) Peek(key string) (*QueryState, bool) {
	return c.lru.Peek(key)
}

// Put stores st under st.Key, replacing any previous state
func (c *Cache) Put(st *QueryState) {
	if old, ok := c.lru.Peek(st.Key); ok && old != st {
		old.release()
	}
	c.lru.Add(st.Key, st)
}

// Remove drops key, cancelling its request if still pending
func (c *Cache) Remove(key string) {
	c.lru.Remove(key)
}

// States returns all states from least to most recently used
func (c *Cache) States() []*QueryState {
	return c.lru.Values()
}

// Len returns the number of cached states
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Reserve grows the cache so at least n states fit
func (c *Cache) Reserve(n int) {
	if n <= c.size {
		return
	}
	for c.size < n {
		c.size *= 2
	}
	c.lru.Resize(c.size)
}

// Purge cancels and drops everything
func (c *Cache) Purge() {
	c.lru.Purge()
}

// release cancels the request of st if one is attached
func (st *QueryState) release() {
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}
