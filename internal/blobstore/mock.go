package blobstore

import (
	"context"
	"fmt"
	"sync"
)

// MockDocumentStore is an in-memory DocumentStore for tests
type MockDocumentStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMockDocumentStore creates an empty in-memory store
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		blobs: make(map[string][]byte),
	}
}

// Upload stores the blob in memory
func (m *MockDocumentStore) Upload(_ context.Context, blobName, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[blobName] = copied
	return blobName, nil
}

// Download returns a previously uploaded blob
func (m *MockDocumentStore) Download(_ context.Context, blobName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[blobName]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}
	return data, nil
}
