package cache

import (
	"context"
	"sync"
	"time"

	"siteaudit-backend/internal/analysis"
)

type memoryEntry struct {
	value     *analysis.Result
	expiresAt time.Time
}

// Memory is an in-process Port backend used in dev mode and tests.
// Expired entries are reported as hit-expired until overwritten.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return NewMemoryAt(time.Now)
}

// NewMemoryAt returns an in-memory cache reading time from now, letting
// tests control expiry.
func NewMemoryAt(now func() time.Time) *Memory {
	return &Memory{
		entries: map[string]memoryEntry{},
		now:     now,
	}
}

// Get reports the tri-state lookup outcome for key. The bucket argument is
// accepted for contract parity; a single in-process map needs no
// partitioning.
func (m *Memory) Get(ctx context.Context, key, bucket string) (Lookup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[entryKey(key, bucket)]
	if !ok {
		return Lookup{}, nil
	}
	if m.now().After(entry.expiresAt) {
		return Lookup{Hit: true, Expired: true}, nil
	}
	return Lookup{Hit: true, Value: entry.value}, nil
}

// Set stores value under key for ttl. A non-positive ttl stores an already
// expired entry.
func (m *Memory) Set(ctx context.Context, key string, value *analysis.Result, ttl time.Duration, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entryKey(key, bucket)] = memoryEntry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (m *Memory) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	now := m.now()
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func entryKey(key, bucket string) string {
	if bucket == "" {
		return key
	}
	return bucket + "/" + key
}

var _ Port = (*Memory)(nil)
