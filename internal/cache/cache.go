package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps raw response bodies keyed by request URL so repeated reads of
// the same CMS collection within one run are served from memory.
//
// A nil *Cache is valid and never hits.
type Cache struct {
	items *lru.Cache[string, []byte]
}

// New returns a cache holding at most size entries. A non-positive size
// disables caching and returns nil.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}

	items, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{items: items}, nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	return c.items.Get(key)
}

func (c *Cache) Put(key string, value []byte) {
	if c == nil {
		return
	}
	c.items.Add(key, value)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.items.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.items.Purge()
}
