package kvstore

import (
	"sync"

	"github.com/smarttrack/backend/core"
)

// memoryStore keeps collections in a mutex-guarded map; used by tests and
// local development.
type memoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

var _ core.Store = (*memoryStore)(nil)

func NewMemoryStore() core.Store {
	return &memoryStore{collections: make(map[string][]byte)}
}

func (s *memoryStore) Read(collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStore) Write(collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections[collection] = stored
	return nil
}

func (s *memoryStore) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[core.SchoolsCollection]; ok {
		return nil
	}
	for _, name := range core.Collections {
		s.collections[name] = []byte("[]")
	}
	return nil
}

func (s *memoryStore) Close() error { return nil }
