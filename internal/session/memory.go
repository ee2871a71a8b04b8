package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used in tests and as a degraded
// fallback when redis is not configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, field string, dest interface{}) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[sessionKey(sessionID, field)]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, field string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[sessionKey(sessionID, field)] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, field string) error {
	s.mu.Lock()
	delete(s.data, sessionKey(sessionID, field))
	s.mu.Unlock()
	return nil
}
