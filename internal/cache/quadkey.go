// Package cache provides the bounded quad-key cache used by the award
// status engine for status memoization.
package cache

import "container/list"

// DefaultMaxCost is the capacity used when a cache is built with New.
const DefaultMaxCost = 1024

type quadKey[K1, K2 comparable] struct {
	k1 K1
	k2 K2
	s1 string
	s2 string
}

type entry[K1, K2 comparable, V any] struct {
	key   quadKey[K1, K2]
	value V
	cost  int
}

// QuadKeyCache maps a 4-part composite key (two comparable scalars, two
// strings) to a value, bounded by total cost. Eviction is
// least-recently-inserted-first: once the total cost exceeds the cap, the
// oldest inserted entries are dropped until the cache fits again.
// Invalidate removes every entry sharing the first two key parts.
//
// The cache performs interior mutation on insert; in a multi-threaded host
// it needs external mutual exclusion (one mutex per instance).
type QuadKeyCache[K1, K2 comparable, V any] struct {
	entries map[quadKey[K1, K2]]*list.Element
	order   *list.List // front = oldest inserted
	maxCost int
	cost    int
}

// New constructs an empty cache with DefaultMaxCost capacity.
func New[K1, K2 comparable, V any]() *QuadKeyCache[K1, K2, V] {
	return &QuadKeyCache[K1, K2, V]{
		entries: make(map[quadKey[K1, K2]]*list.Element),
		order:   list.New(),
		maxCost: DefaultMaxCost,
	}
}

// Insert stores value under the composite key with cost 1, replacing any
// previous entry for the same key.
func (c *QuadKeyCache[K1, K2, V]) Insert(k1 K1, k2 K2, s1, s2 string, value V) {
	c.InsertWithCost(k1, k2, s1, s2, value, 1)
}

// InsertWithCost stores value with an explicit cost. Returns false when the
// cost alone exceeds the capacity; in that case the value is not cached and
// any previous entry under the key is removed.
func (c *QuadKeyCache[K1, K2, V]) InsertWithCost(k1 K1, k2 K2, s1, s2 string, value V, cost int) bool {
	key := quadKey[K1, K2]{k1: k1, k2: k2, s1: s1, s2: s2}
	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
	if cost > c.maxCost {
		return false
	}
	el := c.order.PushBack(&entry[K1, K2, V]{key: key, value: value, cost: cost})
	c.entries[key] = el
	c.cost += cost
	c.evict()
	return true
}

// Get returns the cached value and whether it was present.
func (c *QuadKeyCache[K1, K2, V]) Get(k1 K1, k2 K2, s1, s2 string) (V, bool) {
	key := quadKey[K1, K2]{k1: k1, k2: k2, s1: s1, s2: s2}
	if el, ok := c.entries[key]; ok {
		return el.Value.(*entry[K1, K2, V]).value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether an entry exists for the composite key.
func (c *QuadKeyCache[K1, K2, V]) Contains(k1 K1, k2 K2, s1, s2 string) bool {
	_, ok := c.entries[quadKey[K1, K2]{k1: k1, k2: k2, s1: s1, s2: s2}]
	return ok
}

// Invalidate removes every entry whose first two key parts equal (k1, k2),
// irrespective of the string parts. Returns the number of entries removed.
func (c *QuadKeyCache[K1, K2, V]) Invalidate(k1 K1, k2 K2) int {
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*entry[K1, K2, V])
		if e.key.k1 == k1 && e.key.k2 == k2 {
			c.removeElement(el)
			removed++
		}
		el = next
	}
	return removed
}

// UpdateMatching rewrites in place the value of every entry whose first two
// key parts equal (k1, k2). Entry costs and insertion order are unchanged.
func (c *QuadKeyCache[K1, K2, V]) UpdateMatching(k1 K1, k2 K2, fn func(s1, s2 string, value V) V) {
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K1, K2, V])
		if e.key.k1 == k1 && e.key.k2 == k2 {
			e.value = fn(e.key.s1, e.key.s2, e.value)
		}
	}
}

// SetMaxCost changes the capacity, evicting oldest entries as needed.
func (c *QuadKeyCache[K1, K2, V]) SetMaxCost(n int) {
	if n < 0 {
		n = 0
	}
	c.maxCost = n
	c.evict()
}

// MaxCost returns the current capacity.
func (c *QuadKeyCache[K1, K2, V]) MaxCost() int {
	return c.maxCost
}

// Size returns the number of cached entries.
func (c *QuadKeyCache[K1, K2, V]) Size() int {
	return len(c.entries)
}

// Clear removes all entries.
func (c *QuadKeyCache[K1, K2, V]) Clear() {
	c.entries = make(map[quadKey[K1, K2]]*list.Element)
	c.order.Init()
	c.cost = 0
}

func (c *QuadKeyCache[K1, K2, V]) evict() {
	for c.cost > c.maxCost {
		oldest := c.order.Front()
		if oldest == nil {
			return
		}
		c.removeElement(oldest)
	}
}

func (c *QuadKeyCache[K1, K2, V]) removeElement(el *list.Element) {
	e := el.Value.(*entry[K1, K2, V])
	c.order.Remove(el)
	delete(c.entries, e.key)
	c.cost -= e.cost
}
