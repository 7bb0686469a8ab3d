// Package session is the single source of truth for who is logged in and
// the bearer credentials every other component attaches to backend calls.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. All three must be present together for a session to restore.
const (
	KeyUser         = "user"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// ErrKeyNotFound is returned by a Vault when a key has no stored value.
var ErrKeyNotFound = errors.New("session: key not found")

// Vault is the durable key-value mirror of the in-memory session.
type Vault interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileVault stores session entries in a single JSON file. This is the
// default backend and the closest analogue to the browser's local storage.
type FileVault struct {
	mu   sync.Mutex
	path string
}

// NewFileVault creates a file-backed vault at the given path. The file is
// created lazily on the first Set.
func NewFileVault(path string) *FileVault {
	return &FileVault{path: path}
}

func (v *FileVault) load() (map[string]string, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading session vault: %w", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt vault behaves like an empty one; restore then fails
		// cleanly on missing keys.
		return map[string]string{}, nil
	}
	return entries, nil
}

func (v *FileVault) save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session vault: %w", err)
	}
	tmp := v.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session vault: %w", err)
	}
	return os.Rename(tmp, v.path)
}

// Get returns the stored value for key or ErrKeyNotFound.
func (v *FileVault) Get(_ context.Context, key string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries, err := v.load()
	if err != nil {
		return "", err
	}
	value, ok := entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (v *FileVault) Set(_ context.Context, key, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if dir := filepath.Dir(v.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating vault directory: %w", err)
		}
	}
	entries, err := v.load()
	if err != nil {
		return err
	}
	entries[key] = value
	return v.save(entries)
}

// Delete removes key. Deleting an absent key is a no-op.
func (v *FileVault) Delete(_ context.Context, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries, err := v.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return v.save(entries)
}
