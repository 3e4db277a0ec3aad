// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// ttl.go provides the in-process L1 cache for content snapshots. Entries
// expire after a fixed TTL but are kept until evicted, so a caller can
// still read the last good value when a refresh fails.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// TTL is a size-bounded map whose entries go stale after a fixed duration.
// When full, Put evicts the entry that was inserted (or re-inserted) longest
// ago. All methods are safe for concurrent use.
type TTL[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	order   *list.List // front = oldest insert
	entries map[K]*list.Element
	now     func() time.Time
}

type ttlEntry[K comparable, V any] struct {
	key      K
	value    V
	storedAt time.Time
}

// NewTTL creates a cache holding at most maxSize entries, each fresh for
// ttl. A maxSize below 1 is treated as 1.
func NewTTL[K comparable, V any](ttl time.Duration, maxSize int) *TTL[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &TTL[K, V]{
		ttl:     ttl,
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[K]*list.Element),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (c *TTL[K, V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the value for key if present and not expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*ttlEntry[K, V])
	if c.now().Sub(e.storedAt) >= c.ttl {
		return zero, false
	}
	return e.value, true
}

// Stale returns the value for key regardless of age.
func (c *TTL[K, V]) Stale(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	return el.Value.(*ttlEntry[K, V]).value, true
}

// Put stores value under key, making it the newest entry.
func (c *TTL[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
	for len(c.entries) >= c.maxSize {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*ttlEntry[K, V]).key)
	}
	c.entries[key] = c.order.PushBack(&ttlEntry[K, V]{
		key:      key,
		value:    value,
		storedAt: c.now(),
	})
}

// Len returns the number of stored entries, fresh or stale.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
