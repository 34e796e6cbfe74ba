// Package testutil provides hand-written fakes for the external
// collaborators (object store, secret store) used across package tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"financeingest/internal/storage"
)

// MemStore is an in-memory ObjectStore for tests. Errors can be injected
// per bucket/key to exercise failure paths.
type MemStore struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	getErrs      map[string]error
	putErrs      map[string]error
}

// NewMemStore creates an empty in-memory object store.
func NewMemStore() *MemStore {
	return &MemStore{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		getErrs:      make(map[string]error),
		putErrs:      make(map[string]error),
	}
}

func addr(bucket, key string) string {
	return fmt.Sprintf("%s/%s", bucket, key)
}

// Get implements storage.ObjectStore.
func (s *MemStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.getErrs[addr(bucket, key)]; err != nil {
		return nil, err
	}
	body, ok := s.objects[addr(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, storage.ErrNotFound)
	}
	return body, nil
}

// Put implements storage.ObjectStore.
func (s *MemStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.putErrs[addr(bucket, key)]; err != nil {
		return err
	}
	s.objects[addr(bucket, key)] = body
	s.contentTypes[addr(bucket, key)] = contentType
	return nil
}

// Seed stores an object directly, bypassing error injection.
func (s *MemStore) Seed(bucket, key string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[addr(bucket, key)] = body
}

// Object returns the stored body for bucket/key.
func (s *MemStore) Object(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[addr(bucket, key)]
	return body, ok
}

// ContentType returns the content type recorded for bucket/key.
func (s *MemStore) ContentType(bucket, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentTypes[addr(bucket, key)]
}

// Keys returns all keys stored in bucket, sorted.
func (s *MemStore) Keys(bucket string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	prefix := bucket + "/"
	for k := range s.objects {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			keys = append(keys, k[len(prefix):])
		}
	}
	sort.Strings(keys)
	return keys
}

// FailGet makes Get for bucket/key return err.
func (s *MemStore) FailGet(bucket, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErrs[addr(bucket, key)] = err
}

// FailPut makes Put for bucket/key return err.
func (s *MemStore) FailPut(bucket, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErrs[addr(bucket, key)] = err
}

// StaticSecrets is an in-memory secrets.Store returning fixed payloads.
type StaticSecrets struct {
	Payloads map[string]string
	Err      error
}

// SecretValue implements secrets.Store.
func (s *StaticSecrets) SecretValue(ctx context.Context, secretID string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	payload, ok := s.Payloads[secretID]
	if !ok {
		return "", fmt.Errorf("secret %s not found", secretID)
	}
	return payload, nil
}
