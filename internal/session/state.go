// Package session keeps a bearer token consistent between memory and its
// persisted copy, polls the auth service to confirm it is still valid, and
// drives the signed-in/signed-out surfaces of the client.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// UndefinedToken is the literal left behind when a missing token was
// stringified into storage. It never counts as a credential.
const UndefinedToken = "undefined"

// TokenStore is the persisted half of the session state. LoadToken and
// DeleteToken report an absent token with an error wrapping ErrNoToken.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// State owns the in-memory token mirror and its persisted copy. All token
// mutations go through it so the two stay in step.
type State struct {
	mu    sync.RWMutex
	token string
	store TokenStore
}

// NewState creates a State backed by store. The mirror starts empty; call
// Load to pick up a previously persisted token.
func NewState(store TokenStore) *State {
	return &State{store: store}
}

// Load copies the persisted token into the mirror. An absent token leaves
// the mirror empty.
func (s *State) Load() error {
	token, err := s.store.LoadToken()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			s.setMirror("")
			return nil
		}
		return fmt.Errorf("failed to load token: %w", err)
	}

	s.setMirror(token)
	return nil
}

// Token returns the mirrored token, which may be empty or the undefined sentinel.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SignedIn reports the AuthStatus: a non-empty token that is not the
// undefined sentinel. It is recomputed on every call.
func (s *State) SignedIn() bool {
	token := s.Token()
	return token != "" && token != UndefinedToken
}

// Normalize turns the undefined sentinel into an absent token.
func (s *State) Normalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == UndefinedToken {
		s.token = ""
	}
}

// Set persists token and then mirrors it. The mirror is left untouched when
// persisting fails.
func (s *State) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	s.token = token
	return nil
}

// Clear drops the mirror and removes the persisted token. Calling it on an
// already cleared state is a no-op.
func (s *State) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.store.DeleteToken(); err != nil && !errors.Is(err, ErrNoToken) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (s *State) setMirror(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
