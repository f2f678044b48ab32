package session

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"todolists/internal/core/port"
)

// MemoryStore keeps sessions in process. Entries expire ttl after their last
// write, which stands in for the cookie session lifetime.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Session(id string) port.Session {
	return &memorySession{store: s, id: id}
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}

type memorySession struct {
	store *MemoryStore
	id    string
}

func (m *memorySession) Get(_ context.Context, key string) ([]byte, error) {
	value, found := m.store.cache.Get(sessionKey(m.id, key))

	if !found {
		return nil, port.ErrSessionKeyNotFound
	}

	raw, ok := value.([]byte)

	if !ok {
		return nil, fmt.Errorf("session %s: unexpected value type %T for %s", m.id, value, key)
	}

	return append([]byte(nil), raw...), nil
}

func (m *memorySession) Set(_ context.Context, key string, value []byte) error {
	m.store.cache.Set(sessionKey(m.id, key), append([]byte(nil), value...), m.store.ttl)
	return nil
}

func sessionKey(id string, key string) string {
	return "session:" + id + ":" + key
}
