package auth

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// TokenStore defines the interface for token storage operations
// bound to a single server origin
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// Backend names accepted by Open
const (
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
	BackendFile    = "file"
)

// KeyringStore implements TokenStore using the OS keyring
type KeyringStore struct {
	namespace string
}

func NewKeyringStore(namespace string) *KeyringStore {
	return &KeyringStore{namespace: namespace}
}

func (k *KeyringStore) SaveToken(token string) error {
	return SaveToken(k.namespace, token)
}

func (k *KeyringStore) LoadToken() (string, error) {
	return LoadToken(k.namespace)
}

func (k *KeyringStore) DeleteToken() error {
	return DeleteToken(k.namespace)
}

// Namespace derives the storage namespace for a server URL. Tokens are
// scoped per origin, so paths and queries are ignored.
func Namespace(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: scheme and host are required", serverURL)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// Open returns the TokenStore for backend, scoped to namespace. dataDir holds
// the sqlite database and the token file for the non-keyring backends.
func Open(backend, namespace, dataDir string) (TokenStore, error) {
	switch backend {
	case "", BackendKeyring:
		return NewKeyringStore(namespace), nil
	case BackendSQLite:
		return OpenSQLiteStore(filepath.Join(dataDir, "tokens.sqlite"), namespace)
	case BackendFile:
		return NewFileStore(filepath.Join(dataDir, "tokens.json"), namespace), nil
	default:
		return nil, fmt.Errorf("unknown token store %q (expected %s, %s or %s)", backend, BackendKeyring, BackendSQLite, BackendFile)
	}
}
