package codestore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	saltLen = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// EncryptedFileStore persists the code as salt | nonce | XChaCha20-Poly1305
// ciphertext. The key is derived from the passphrase with Argon2id.
type EncryptedFileStore struct {
	path       string
	passphrase []byte

	mu sync.Mutex
}

var _ Store = (*EncryptedFileStore)(nil)

func NewEncryptedFileStore(path, passphrase string) (*EncryptedFileStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &EncryptedFileStore{path: path, passphrase: []byte(passphrase)}, nil
}

func (s *EncryptedFileStore) Save(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(code)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(code), salt)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create store folder: %w", err)
	}
	if err := os.WriteFile(s.path, append(salt, sealed...), 0o600); err != nil {
		return fmt.Errorf("failed to write code store: %w", err)
	}
	return nil
}

func (s *EncryptedFileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoCode
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code store: %w", err)
	}
	if len(data) < saltLen+chacha20poly1305.NonceSizeX {
		return "", ErrDecrypt
	}

	salt, rest := data[:saltLen], data[saltLen:]
	aead, err := chacha20poly1305.NewX(s.key(salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, salt)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

func (s *EncryptedFileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove code store: %w", err)
	}
	return nil
}

func (s *EncryptedFileStore) key(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}
