package client

import "sync"

// Well-known storage keys shared with prior front-end deployments.
// Presence of the token key is the sole signal consulted at restore time.
const (
	storageTokenKey = "authToken"
	storageRolesKey = "userRoles"
)

// Storage is the client-local persistent store the session writes its
// token and role list into. Implementations must be safe for concurrent
// use.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStorage is an in-process Storage. It stands in for browser
// local storage in tests and for CLI tools that do not persist sessions
// across runs.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
