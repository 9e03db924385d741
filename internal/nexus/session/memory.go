package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryBackend keeps sessions in process. Sessions do not survive a restart
// and are not shared between replicas.
type MemoryBackend struct {
	c *gocache.Cache
}

// NewMemoryBackend starts a go-cache janitor that sweeps expired entries
// every cleanupInterval.
func NewMemoryBackend(defaultTTL, cleanupInterval time.Duration) *MemoryBackend {
	return &MemoryBackend{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, ErrNoSession
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, ErrNoSession
	}
	return b, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.Set(key, value, ttl)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *MemoryBackend) Purge(_ context.Context) (int, error) {
	before := m.c.ItemCount()
	m.c.DeleteExpired()
	return before - m.c.ItemCount(), nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error {
	m.c.Flush()
	return nil
}

// Len reports stored entries, expired ones included until purged.
func (m *MemoryBackend) Len() int { return m.c.ItemCount() }
