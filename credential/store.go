package credential

import (
	"sync"

	"github.com/arloliu/mozcdata/errs"
)

// Store persists a single password.
//
// GetPassword returns errs.ErrPasswordNotFound when no password is stored.
// RemovePassword on an empty store is not an error.
type Store interface {
	SetPassword(password string) error
	GetPassword() (string, error)
	RemovePassword() error
}

// MemoryStore keeps the password in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	password string
	set      bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetPassword(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.password, s.set = password, true

	return nil
}

func (s *MemoryStore) GetPassword() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return "", errs.ErrPasswordNotFound
	}

	return s.password, nil
}

func (s *MemoryStore) RemovePassword() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.password, s.set = "", false

	return nil
}
