package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	invapp "github.com/stockroom/backend/internal/application/inventory"
)

var _ invapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps objects in memory.
// It serves development setups without an S3 backend, and tests.
type StubObjectStorage struct {
	// BaseURL prefixes generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is an object held by StubObjectStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewStubObjectStorage creates an empty StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data under storageKey
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = StoredObject{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// Delete forgets storageKey
func (s *StubObjectStorage) Delete(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// GenerateDownloadURL returns a fake signed URL for storageKey
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/download/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// Object returns what was stored under storageKey
func (s *StubObjectStorage) Object(storageKey string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj, ok
}

// Len reports how many objects are stored
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
