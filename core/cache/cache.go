package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry holds one cached value and when it was built.
type entry[V any] struct {
	value V
	built time.Time
}

// Store is a TTL cache keyed by string. Concurrent misses for the same key
// share one load through singleflight.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	gen     uint64 // bumped by Clear, guarded by mu
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// New creates a store whose entries expire after ttl. A zero ttl disables caching.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the fresh value for key, if any.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if s.ttl <= 0 {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().Sub(e.built) >= s.ttl {
		return zero, false
	}
	return e.value, true
}

// GetOrLoad returns the cached value for key or builds it with load.
// hit reports whether the value came from the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (value V, hit bool, err error) {
	if v, ok := s.Get(key); ok {
		return v, true, nil
	}
	if s.ttl <= 0 {
		v, err := load(ctx)
		return v, false, err
	}

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	// A load started before a Clear must not be shared with callers arriving after it.
	flight := strconv.FormatUint(gen, 10) + "|" + key
	result, err, _ := s.sf.Do(flight, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		if v, ok := s.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gen == gen {
			s.entries[key] = entry[V]{value: v, built: s.now()}
		}
		s.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	return result.(V), false, nil
}

// Clear drops every entry. Writers call it after the underlying data changed.
// Loads already in flight still return to their callers but are not stored.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry[V])
	s.gen++
	s.mu.Unlock()
}

// Len returns the number of entries, fresh or not.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
