package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Slots is a process-wide key-value store holding one text value per key.
// Values survive restarts for every driver except memory.
type Slots interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Supported slot drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Open returns the slot store for driver rooted at path.
func Open(driver, path string) (Slots, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverFile, "":
		return NewFileSlots(path)
	case DriverSQLite:
		return NewSQLiteSlots(path)
	case DriverMemory:
		return NewMemorySlots(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty slot key")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid slot key %q", key)
	}
	return nil
}
