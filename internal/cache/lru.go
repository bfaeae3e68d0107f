package cache

import (
	"container/list"
	"context"
	"sync"
)

// Memory is an in-process LRU cache with size-based eviction.
// Stale versions age out as new keys push them to the back.
type Memory[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

type entry[T any] struct {
	key   string
	value *T
}

// NewMemory creates an LRU cache holding at most maxSize entries.
// A maxSize below 1 is treated as 1.
func NewMemory[T any](maxSize int) *Memory[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Memory[T]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a value and marks it most recently used.
func (c *Memory[T]) Get(_ context.Context, key string) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*entry[T]).value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *Memory[T]) Set(_ context.Context, key string, value *T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value = &entry[T]{key: key, value: value}
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(&entry[T]{key: key, value: value})
	if c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		delete(c.items, oldest.Value.(*entry[T]).key)
		c.lru.Remove(oldest)
	}
}

// Len returns the number of cached entries.
func (c *Memory[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
