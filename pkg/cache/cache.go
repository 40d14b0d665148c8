// Package cache provides a thread-safe LRU cache for compiled operator
// trees. It avoids re-tokenizing and re-building the same expression
// string on every call, which pays off when a fixed set of expressions
// is evaluated against many different bindings.
package cache

import (
	"container/list"
	"sync"

	"github.com/sandrolain/goevalexpr/pkg/types"
)

type entry struct {
	source string
	expr   *types.Expression
}

// Cache is an LRU cache keyed by expression source. Once the capacity
// is reached, the least recently accessed tree is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// New creates an LRU cache holding at most capacity compiled trees.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves the compiled tree for source, promoting it to most
// recently used. It reports false when source has not been cached.
func (c *Cache) Get(source string) (*types.Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[source]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).expr, true
}

// Put inserts or replaces the tree for source, evicting the least
// recently used entry when at capacity.
func (c *Cache) Put(source string, expr *types.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[source]; ok {
		el.Value.(*entry).expr = expr
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(*entry).source)
		}
	}
	c.items[source] = c.order.PushFront(&entry{source: source, expr: expr})
}

// GetOrCompile returns the cached tree for source, or calls build to
// create one, caches it, and returns it. Build failures are not cached.
func (c *Cache) GetOrCompile(source string, build func() (*types.Expression, error)) (*types.Expression, error) {
	if expr, ok := c.Get(source); ok {
		return expr, nil
	}
	expr, err := build()
	if err != nil {
		return nil, err
	}
	c.Put(source, expr)
	return expr, nil
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Capacity returns the maximum number of trees the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Clear removes every cached tree.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}
