// Package codestore keeps the last authorization code so an exchange can be
// retried by hand. Codes are never written to disk in plaintext.
package codestore

import (
	"errors"
	"sync"
)

var (
	ErrNoCode          = errors.New("no stored authorization code")
	ErrDecrypt         = errors.New("cannot decrypt stored code")
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
)

type Store interface {
	Save(code string) error
	Load() (string, error)
	Clear() error
}

// MemoryStore holds the code for the life of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	code *string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = &code
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.code == nil {
		return "", ErrNoCode
	}
	return *s.code, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code = nil
	return nil
}
