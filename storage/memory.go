package storage

import "sync"

// MemorySlots is a non-persistent slot store.
type MemorySlots struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: map[string]string{}}
}

func (s *MemorySlots) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemorySlots) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemorySlots) Close() error { return nil }
