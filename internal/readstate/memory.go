package readstate

import (
	"fmt"
	"sync"
)

// MemoryStore keeps the read state in process memory. It backs the "memory"
// state backend and doubles as a stub in tests, where LoadErr and Fail
// simulate unavailable storage.
type MemoryStore struct {
	mu      sync.Mutex
	version string
	set     bool

	// LoadErr, when non-nil, is returned by Load.
	LoadErr error

	saveErr error
	saves   int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns an in-memory store holding version.
func NewMemoryStoreWith(version string) *MemoryStore {
	return &MemoryStore{version: version, set: true}
}

// Load implements Store.
func (m *MemoryStore) Load() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return "", false, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, m.LoadErr)
	}
	return m.version, m.set, nil
}

// Save implements Store.
func (m *MemoryStore) Save(version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, m.saveErr)
	}
	m.version = version
	m.set = true
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// Saves returns how many times Save was called, including failed calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Fail makes subsequent saves return err without storing anything.
// A nil err restores normal behaviour.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
