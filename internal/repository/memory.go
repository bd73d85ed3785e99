package repository

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryStore is the in-process CacheStore used alone or as the Redis fallback.
type MemoryStore struct {
	entries    sync.Map
	mu         sync.Mutex
	rateLimits map[int64]*rateLimitEntry
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rateLimits: make(map[int64]*rateLimitEntry),
		now:        time.Now,
	}
}

func (r *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok := r.entries.Load(key)
	if !ok {
		return nil, false, nil
	}
	entry := val.(*cacheEntry)
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.entries.CompareAndDelete(key, val)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores a copy of value. A non-positive ttl never expires.
func (r *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := &cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.entries.Store(key, entry)
	return nil
}

// CheckRateLimit counts calls in a fixed window that starts at the first call.
func (r *MemoryStore) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.rateLimits[userID]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{expiresAt: now.Add(window)}
		r.rateLimits[userID] = entry
	}
	entry.count++
	return entry.count <= limit, nil
}
