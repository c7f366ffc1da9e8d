package session

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"kassa/internal/config"
)

// TokenStore is the single named slot of durable client-local storage that
// holds the bearer credential between runs. Its presence at startup is what
// triggers silent session resumption.
type TokenStore struct {
	path string
}

func NewTokenStore(cfg config.Config) *TokenStore {
	return &TokenStore{path: cfg.TokenFile}
}

// Load returns the stored credential, or "" when the slot is empty.
func (t *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (t *TokenStore) Save(token string) error {
	return os.WriteFile(t.path, []byte(token), 0o600)
}

// Clear empties the slot; a missing file already counts as cleared.
func (t *TokenStore) Clear() error {
	err := os.Remove(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
