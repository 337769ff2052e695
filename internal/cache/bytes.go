// Package cache holds the process-wide poster byte cache.
package cache

import (
	"bytes"
	"container/list"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// Bytes maps a key (usually an image URL) to a byte blob in memory.
//
// There is no TTL. When maxBytes is positive, inserting past the budget
// evicts the oldest insertions first, so a Get may miss even for a key that
// was just Put. Blobs are copied in and out. Safe for concurrent use.
type Bytes struct {
	mu       sync.RWMutex
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
	size     int64
	maxBytes int64
}

type entry struct {
	key   string
	value []byte
}

var _ domain.ByteCache = (*Bytes)(nil)

// NewBytes creates a cache bounded to maxBytes (0 = unbounded)
func NewBytes(maxBytes int64) *Bytes {
	if maxBytes < 0 {
		maxBytes = 0
	}
	return &Bytes{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		maxBytes: maxBytes,
	}
}

// Get returns the blob stored under key
func (c *Bytes) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(el.Value.(*entry).value), true
}

// Put inserts or overwrites the blob under key. Last writer wins.
// A blob larger than the whole budget is not stored.
func (c *Bytes) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}

	n := int64(len(value))
	if c.maxBytes > 0 && n > c.maxBytes {
		return
	}

	el := c.order.PushBack(&entry{key: key, value: bytes.Clone(value)})
	c.entries[key] = el
	c.size += n

	for c.maxBytes > 0 && c.size > c.maxBytes {
		c.removeElement(c.order.Front())
	}
}

// Len returns the number of entries
func (c *Bytes) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Size returns the total number of cached bytes
func (c *Bytes) Size() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// Purge drops every entry
func (c *Bytes) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.size = 0
}

func (c *Bytes) removeElement(el *list.Element) {
	e := c.order.Remove(el).(*entry)
	delete(c.entries, e.key)
	c.size -= int64(len(e.value))
}
