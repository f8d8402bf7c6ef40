package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryArchive keeps reports in process memory. It serves development
// setups without object storage and tests.
type MemoryArchive struct {
	// BaseURL prefixes generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArchive creates a new MemoryArchive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{
		BaseURL: "http://localhost:8080/archive",
		objects: make(map[string][]byte),
	}
}

// Upload stores a copy of data under key
func (m *MemoryArchive) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

// GenerateDownloadURL returns a fake URL for key
func (m *MemoryArchive) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if _, ok := m.Get(key); !ok {
		return "", time.Time{}, errors.New("object not found: " + key)
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)
	return m.BaseURL + "/" + key + "?expires=" + expiresAt.UTC().Format(time.RFC3339), expiresAt, nil
}

// Get returns the stored object
func (m *MemoryArchive) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}
