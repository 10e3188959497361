package persist

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore is a BlobStore held in process memory. Nothing survives the
// process. FailPuts makes every later Put fail, which is how tests exercise
// the write-failure path.
type MemoryStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	putErr   error
	putCount int
}

var _ BlobStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return bytes.Clone(v), nil
}

// Put stores a copy of value, or returns the error set by FailPuts.
func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.putCount++
	if m.putErr != nil {
		return m.putErr
	}
	m.blobs[key] = bytes.Clone(value)
	return nil
}

// FailPuts makes every later Put return err. A nil err restores normal
// behavior.
func (m *MemoryStore) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Puts returns how many times Put was called, failed calls included.
func (m *MemoryStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.putCount
}
