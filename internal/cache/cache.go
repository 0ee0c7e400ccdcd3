// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/playnext/internal/metrics"
)

// entry is a stored value and the time it was stored.
type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Table is a thread-safe key/value table with read-time TTL checks.
type Table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	name    string
	now     func() time.Time
}

// NewTable creates an empty table.
//
// Parameters:
//   - name: cache_type label used for Prometheus metrics ("library", "detail", ...)
//   - ttl: how long a stored value is served
//
// Thread Safety: all methods are safe for concurrent use. Two goroutines that
// miss on the same key may both fetch and both Put; the last write wins.
func NewTable[K comparable, V any](name string, ttl time.Duration) *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		name:    name,
		now:     time.Now,
	}
}

// Get returns the value for key if it was stored less than TTL ago.
//
// Returns:
//   - V: the stored value, or the zero value
//   - bool: false when the key is absent or the entry is stale
//
// A stale entry is not removed; it stays until Put, Delete or Clear.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	e, ok := t.entries[key]
	t.mu.RUnlock()

	if !ok || t.now().Sub(e.fetchedAt) >= t.ttl {
		metrics.CacheMisses.WithLabelValues(t.name).Inc()
		var zero V
		return zero, false
	}

	metrics.CacheHits.WithLabelValues(t.name).Inc()
	return e.value, true
}

// Put stores value under key, replacing any previous entry and resetting
// its timestamp.
func (t *Table[K, V]) Put(key K, value V) {
	t.mu.Lock()
	t.entries[key] = entry[V]{value: value, fetchedAt: t.now()}
	n := len(t.entries)
	t.mu.Unlock()

	metrics.CacheSize.WithLabelValues(t.name).Set(float64(n))
}

// FetchedAt reports when key was last stored, stale or not.
func (t *Table[K, V]) FetchedAt(key K) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[key]
	return e.fetchedAt, ok
}

// Delete removes key. Deleting an absent key is a no-op.
func (t *Table[K, V]) Delete(key K) {
	t.mu.Lock()
	_, ok := t.entries[key]
	delete(t.entries, key)
	n := len(t.entries)
	t.mu.Unlock()

	if ok {
		metrics.CacheEvictions.WithLabelValues(t.name).Inc()
	}
	metrics.CacheSize.WithLabelValues(t.name).Set(float64(n))
}

// Clear removes every entry.
func (t *Table[K, V]) Clear() {
	t.mu.Lock()
	n := len(t.entries)
	t.entries = make(map[K]entry[V])
	t.mu.Unlock()

	metrics.CacheEvictions.WithLabelValues(t.name).Add(float64(n))
	metrics.CacheSize.WithLabelValues(t.name).Set(0)
}

// Len returns the number of stored entries, stale ones included.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// TTL returns the table's time-to-live.
func (t *Table[K, V]) TTL() time.Duration {
	return t.ttl
}
