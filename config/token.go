package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName mirrors the storage key the web client used for its credential.
const tokenFileName = "user_token"

// TokenStore persists the backend bearer token in the data directory.
// The token is opaque to the client: written at login, removed at logout
// or when the backend rejects it.
type TokenStore struct {
	dataDir string
}

func NewTokenStore(dataDir string) *TokenStore {
	return &TokenStore{dataDir: dataDir}
}

func (t *TokenStore) path() string {
	return filepath.Join(t.dataDir, tokenFileName)
}

// Load returns the persisted token, or "" if none is stored.
func (t *TokenStore) Load() string {
	data, err := os.ReadFile(t.path())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token with user-only permissions.
func (t *TokenStore) Save(token string) error {
	if err := EnsureDir(t.dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	// 0600 - bearer token grants account access
	if err := os.WriteFile(t.path(), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the persisted token. A missing file is not an error.
func (t *TokenStore) Clear() error {
	err := os.Remove(t.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
