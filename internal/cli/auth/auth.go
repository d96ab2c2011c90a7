package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

const (
	service = "sessionguard-cli"

	// AccessTokenKey is the storage key the session token lives under.
	AccessTokenKey = "access_token"
)

// ErrNotFound is returned when no token is stored for a namespace
var ErrNotFound = session.ErrNoToken

// getKeyringKey returns a unique key for storing tokens per server origin
func getKeyringKey(namespace string) string {
	return fmt.Sprintf("%s-%s", AccessTokenKey, namespace)
}

// SaveToken persists the token securely in the OS keychain/credential manager
func SaveToken(namespace, token string) error {
	key := getKeyringKey(namespace)
	if err := keyring.Set(service, key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken retrieves the token from the OS keychain/credential manager
func LoadToken(namespace string) (string, error) {
	key := getKeyringKey(namespace)
	token, err := keyring.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the token from the OS keychain/credential manager
func DeleteToken(namespace string) error {
	key := getKeyringKey(namespace)
	if err := keyring.Delete(service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
