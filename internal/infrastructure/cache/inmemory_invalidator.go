package cache

import (
	"context"
	"sync"
)

// InMemoryInvalidator is a process-local cache with key eviction. Suitable
// for single-instance deployments and tests; state is not shared across
// processes.
type InMemoryInvalidator struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewInMemoryInvalidator creates an empty in-memory cache
func NewInMemoryInvalidator() *InMemoryInvalidator {
	return &InMemoryInvalidator{entries: make(map[string][]byte)}
}

// Set stores a value under the given key
func (c *InMemoryInvalidator) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Get returns the value stored under the key, if any
func (c *InMemoryInvalidator) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

// Invalidate deletes the given keys
func (c *InMemoryInvalidator) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// Len returns the number of cached entries
func (c *InMemoryInvalidator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
