package kvstore

import "fmt"

// Memory is an in-memory Store for tests.
//
// FailSet, when set, makes every Set call return that error so tests can
// exercise the storage-failure paths of the quota tracker and app store.
type Memory struct {
	data    map[string]string
	FailSet error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key, or ErrKeyNotFound.
func (m *Memory) Get(key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set writes value under key, or fails with FailSet when injected.
func (m *Memory) Set(key, value string) error {
	if m.FailSet != nil {
		return fmt.Errorf("writing key %s: %w", key, m.FailSet)
	}
	m.data[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len reports the number of stored keys. Test helper.
func (m *Memory) Len() int { return len(m.data) }
