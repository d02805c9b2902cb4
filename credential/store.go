// Package credential stores registered users and their password digests.
package credential

import (
	"errors"
	"sync"
)

// ErrDuplicateUser is returned by Insert when the username is already taken.
var ErrDuplicateUser = errors.New("credential: user already exists")

// Record is a registered user. It is created once and never updated.
type Record struct {
	Username     string
	PasswordHash string
}

// Store is the credential persistence contract used by the gateway.
// Implementations must be safe for concurrent use.
type Store interface {
	// Exists reports whether username is registered.
	Exists(username string) bool

	// Insert adds a record, or returns ErrDuplicateUser if the username is
	// present. The presence check and the insert are atomic.
	Insert(username, passwordHash string) error

	// Lookup returns the record for username.
	Lookup(username string) (Record, bool)

	// Delete removes username and reports whether it was present.
	Delete(username string) bool

	// Len returns the number of registered users.
	Len() int
}

// MemoryStore is an in-process Store guarded by a read/write lock.
// Its contents are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[username]
	return ok
}

func (s *MemoryStore) Insert(username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[username]; ok {
		return ErrDuplicateUser
	}
	s.records[username] = Record{Username: username, PasswordHash: passwordHash}
	return nil
}

func (s *MemoryStore) Lookup(username string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[username]
	return r, ok
}

func (s *MemoryStore) Delete(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[username]; !ok {
		return false
	}
	delete(s.records, username)
	return true
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
