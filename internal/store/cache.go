package store

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru"
)

// Cache provides in-memory caching for objects.
type Cache interface {
	Get(key string) ([]byte, bool)
	Add(key string, value []byte)
	Has(key string) bool
}

// LRUCache is a size-bounded cache evicting the least recently used object.
// Values are copied on the way in and out so callers never share a buffer
// with the cache.
type LRUCache struct {
	lru *lru.Cache
}

// NewLRUCache creates a new LRU cache holding at most maxSize objects.
func NewLRUCache(maxSize int) (*LRUCache, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRUCache{lru: c}, nil
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return bytes.Clone(v.([]byte)), true
}

func (c *LRUCache) Add(key string, value []byte) {
	c.lru.Add(key, bytes.Clone(value))
}

func (c *LRUCache) Has(key string) bool {
	return c.lru.Contains(key)
}

// noCache is used when caching is disabled (size <= 0).
type noCache struct{}

func (noCache) Get(string) ([]byte, bool) { return nil, false }
func (noCache) Add(string, []byte)        {}
func (noCache) Has(string) bool           { return false }
