package filestore

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockStore keeps saved files in memory for tests.
type MockStore struct {
	mu      sync.Mutex
	Files   map[string][]byte
	SaveErr error
	nextID  int
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{Files: make(map[string][]byte)}
}

// Save records the content under a sequential key.
func (m *MockStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	key := fmt.Sprintf("%d_%s", m.nextID, name)
	m.Files[key] = data
	return key, nil
}

// PublicURL returns a mock:// URL.
func (m *MockStore) PublicURL(key string) string {
	return "mock://" + key
}
