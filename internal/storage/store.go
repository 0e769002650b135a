package storage

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a named object doesn't exist in the store
var ErrNotFound = errors.New("object not found")

// Store defines the interface for named-object storage used by the output layer
// All implementations must be safe for concurrent access
type Store interface {
	// Get retrieves the contents of an object by name
	// Returns ErrNotFound if the object doesn't exist
	Get(name string) ([]byte, error)

	// Put writes an object, replacing any existing contents
	Put(name string, data []byte) error

	// Size reports the stored size of an object in bytes
	// Returns ErrNotFound if the object doesn't exist
	Size(name string) (int64, error)

	// List returns all object names in lexical order
	List() ([]string, error)
}

// Preparer is implemented by stores that need setup before the first write
type Preparer interface {
	Prepare() error
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Objects int   // Number of objects
	Bytes   int64 // Total size of all objects in bytes
}

// MemoryStore implements Store interface with in-memory storage
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu     sync.RWMutex      // Protects concurrent access
	data   map[string][]byte // Object storage
	writes map[string]int    // Number of Put calls per name
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		writes: make(map[string]int),
	}
}

// Get retrieves an object by name
// Returns a copy of the contents to prevent external modification
func (m *MemoryStore) Get(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[name]
	if !exists {
		return nil, ErrNotFound
	}

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Put stores an object under the given name
// Makes a copy of the contents to prevent external modification
func (m *MemoryStore) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[name] = stored
	m.writes[name]++

	return nil
}

// Size reports the length of an object's contents
func (m *MemoryStore) Size(name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[name]
	if !exists {
		return 0, ErrNotFound
	}
	return int64(len(value)), nil
}

// List returns all object names in lexical order
func (m *MemoryStore) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Writes reports how many times an object has been written
func (m *MemoryStore) Writes(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[name]
}

// Stats returns storage statistics
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var totalBytes int64
	for _, value := range m.data {
		totalBytes += int64(len(value))
	}

	return StoreStats{
		Objects: len(m.data),
		Bytes:   totalBytes,
	}
}
