package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryCache implements Service with in-process storage. It is the
// fallback when Redis is not configured.
type MemoryCache struct {
	data    map[string]*memoryItem
	mutex   sync.RWMutex
	maxSize int
	ticker  *time.Ticker
	done    chan struct{}
}

// MemoryOption configures MemoryCache.
type MemoryOption func(*MemoryCache)

// WithMaxSize caps the number of stored entries.
func WithMaxSize(n int) MemoryOption {
	return func(mc *MemoryCache) {
		if n > 0 {
			mc.maxSize = n
		}
	}
}

// NewMemoryCache creates an in-memory cache with periodic expiry sweeps.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	mc := &MemoryCache{
		data:    make(map[string]*memoryItem),
		maxSize: 1000,
		ticker:  time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(mc)
	}

	go mc.sweep()
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var expireAt time.Time
	if expiration > 0 {
		expireAt = time.Now().Add(expiration)
	}

	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	if len(mc.data) >= mc.maxSize {
		mc.evictOne()
	}
	mc.data[key] = &memoryItem{value: b, expireAt: expireAt}
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string, dest interface{}) error {
	mc.mutex.Lock()
	item, exists := mc.data[key]
	if exists && item.expired() {
		delete(mc.data, key)
		exists = false
	}
	mc.mutex.Unlock()

	if !exists {
		return ErrCacheMiss
	}
	return json.Unmarshal(item.value, dest)
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	for _, key := range keys {
		delete(mc.data, key)
	}
	return nil
}

func (mc *MemoryCache) Health(context.Context) error { return nil }

func (mc *MemoryCache) Close() error {
	mc.ticker.Stop()
	close(mc.done)
	return nil
}

// evictOne drops the entry closest to expiry, preferring any expiring
// entry over TTL-less ones; callers hold the lock.
func (mc *MemoryCache) evictOne() {
	var victim string
	var earliest time.Time
	for key, item := range mc.data {
		if victim == "" {
			victim = key
			earliest = item.expireAt
			continue
		}
		if item.expireAt.IsZero() {
			continue
		}
		if earliest.IsZero() || item.expireAt.Before(earliest) {
			victim = key
			earliest = item.expireAt
		}
	}
	if victim != "" {
		delete(mc.data, victim)
	}
}

func (mc *MemoryCache) sweep() {
	for {
		select {
		case <-mc.ticker.C:
			mc.mutex.Lock()
			for key, item := range mc.data {
				if item.expired() {
					delete(mc.data, key)
				}
			}
			mc.mutex.Unlock()
		case <-mc.done:
			return
		}
	}
}
