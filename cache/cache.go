/*
Package cache memoizes computed schedules.

PURPOSE:
  The generator is a pure function of its parameters, so a result computed
  once can be served again for the same LoanParameters.Key(). The API keeps
  the ID of the stored report under that key.

IMPLEMENTATIONS:
  - Memory: process-local map with optional TTL (default, tests)
  - Redis:  shared cache for several API instances

FAILURE POLICY:
  A cache is never the source of truth. Callers treat Get misses and Set
  errors as "compute again" and log them as warnings.
*/
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// =============================================================================
// MEMORY CACHE
// =============================================================================

type entry struct {
	value   []byte
	expires time.Time // zero means never
}

// Memory is an in-process Cache. A zero TTL keeps entries forever.
type Memory struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	e := entry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
