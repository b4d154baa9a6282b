package notifiedstore

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps the table in process memory. Entries never expire and are
// lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	cache *cache.Cache
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		// no janitor: nothing ever expires
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Has reports whether senderID is cached.
func (m *MemoryStore) Has(_ context.Context, senderID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, found := m.cache.Get(senderID)
	return found, nil
}

// MarkNotified relies on cache.Add failing for an existing key.
func (m *MemoryStore) MarkNotified(_ context.Context, senderID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.cache.Add(senderID, true, cache.NoExpiration); err != nil {
		return false, nil
	}
	return true, nil
}

// Clear flushes the cache and returns how many senders it held.
func (m *MemoryStore) Clear(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.cache.ItemCount()
	m.cache.Flush()
	return n, nil
}

// Count returns the number of cached senders.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.ItemCount(), nil
}

// IDs lists the cached senders.
func (m *MemoryStore) IDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids, nil
}
