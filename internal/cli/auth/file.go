package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements TokenStore on a JSON file shared by all origins.
// Layout: {"<namespace>": {"access_token": "<token>"}}
type FileStore struct {
	mu        sync.Mutex
	path      string
	namespace string
}

func NewFileStore(path, namespace string) *FileStore {
	return &FileStore{path: path, namespace: namespace}
}

func (f *FileStore) SaveToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	if items[f.namespace] == nil {
		items[f.namespace] = map[string]string{}
	}
	items[f.namespace][AccessTokenKey] = token
	return f.write(items)
}

func (f *FileStore) LoadToken() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", err
	}
	token, ok := items[f.namespace][AccessTokenKey]
	if !ok {
		return "", ErrNotFound
	}
	return token, nil
}

func (f *FileStore) DeleteToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := items[f.namespace][AccessTokenKey]; !ok {
		return nil
	}
	delete(items[f.namespace], AccessTokenKey)
	if len(items[f.namespace]) == 0 {
		delete(items, f.namespace)
	}
	return f.write(items)
}

func (f *FileStore) read() (map[string]map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	items := map[string]map[string]string{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return items, nil
}

func (f *FileStore) write(items map[string]map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	// Replaced by rename; readers never observe a partial file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
