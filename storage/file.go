package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileSlots keeps each slot in its own file under root.
type FileSlots struct {
	root string
	mu   sync.RWMutex
}

func NewFileSlots(root string) (*FileSlots, error) {
	if root == "" {
		root = "data/slots"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &FileSlots{root: root}, nil
}

func (s *FileSlots) slotPath(key string) string {
	return filepath.Join(s.root, key)
}

// Get returns the slot value. A missing file is reported as ok == false.
func (s *FileSlots) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.slotPath(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set overwrites the slot. The value is written to a temp file and renamed
// so a crashed write never leaves a half-written slot behind.
func (s *FileSlots) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.root, "."+key+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.slotPath(key))
}

func (s *FileSlots) Close() error { return nil }
